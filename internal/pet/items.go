package pet

import (
	"errors"
	"fmt"
)

// Item is a usable object kind. The numeric value doubles as the symbol index the
// memory game uses for the same object.
type Item int

const (
	ItemPizza Item = iota
	ItemBed
	ItemSoap
	ItemPill
)

// ErrUnknownItem is returned when an item has no definition.
var ErrUnknownItem = errors.New("pet: unknown item")

// Reaction is the animation the creature plays after using an item.
type Reaction int

const (
	ReactNone Reaction = iota
	ReactFeed
	ReactSleep
	ReactClean
	ReactMedicine
)

// ItemDefinition describes an item's properties and effect
type ItemDefinition struct {
	Item     Item
	Name     string
	Emoji    string
	Need     Need
	Reaction Reaction
	Message  string
	Apply    func(v *Vitals, amount float64)
}

// Amounts holds the amount each item restores.
type Amounts struct {
	Food  float64 `toml:"food"`
	Rest  float64 `toml:"rest"`
	Clean float64 `toml:"clean"`
	Heal  float64 `toml:"heal"`
}

// DefaultAmounts returns the stock item amounts.
func DefaultAmounts() Amounts {
	return Amounts{
		Food:  DefaultItemAmount,
		Rest:  DefaultItemAmount,
		Clean: DefaultItemAmount,
		Heal:  DefaultItemAmount,
	}
}

// For returns the amount restored by item.
func (a Amounts) For(item Item) float64 {
	switch item {
	case ItemPizza:
		return a.Food
	case ItemBed:
		return a.Rest
	case ItemSoap:
		return a.Clean
	case ItemPill:
		return a.Heal
	}
	return 0
}

// GetItemDefinitions returns every item in symbol order
func GetItemDefinitions() []ItemDefinition {
	return []ItemDefinition{
		{
			Item:     ItemPizza,
			Name:     "Pizza",
			Emoji:    "🍕",
			Need:     NeedHunger,
			Reaction: ReactFeed,
			Message:  "ate",
			Apply:    (*Vitals).Feed,
		},
		{
			Item:     ItemBed,
			Name:     "Bed",
			Emoji:    "🛏️",
			Need:     NeedEnergy,
			Reaction: ReactSleep,
			Message:  "slept on",
			Apply:    (*Vitals).Rest,
		},
		{
			Item:     ItemSoap,
			Name:     "Soap",
			Emoji:    "🧼",
			Need:     NeedCleanliness,
			Reaction: ReactClean,
			Message:  "showered with",
			Apply:    (*Vitals).Clean,
		},
		{
			Item:     ItemPill,
			Name:     "Pill",
			Emoji:    "💊",
			Need:     NeedHealth,
			Reaction: ReactMedicine,
			Message:  "took",
			Apply:    (*Vitals).Heal,
		},
	}
}

// GetItemDefinition returns the definition for a given item
func GetItemDefinition(item Item) *ItemDefinition {
	for _, def := range GetItemDefinitions() {
		if def.Item == item {
			return &def
		}
	}
	return nil
}

// ItemCount is the number of item kinds, and so the memory game alphabet size.
func ItemCount() int {
	return len(GetItemDefinitions())
}

func (i Item) String() string {
	if def := GetItemDefinition(i); def != nil {
		return def.Name
	}
	return fmt.Sprintf("Item(%d)", int(i))
}
