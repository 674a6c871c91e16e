package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

func requiredInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("required")
			}
			return nil
		})
}

// numberInput accepts an empty value or a non-negative number.
func numberInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil || f < 0 {
				return fmt.Errorf("must be a non-negative number")
			}
			return nil
		})
}

func sectionForm(name, description *string, optional *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			requiredInput("Section name", name),
			huh.NewInput().Title("Description").Value(description),
			huh.NewConfirm().Title("Optional section?").Value(optional),
		),
	)
}

// itemForm collects the fields of a new item; quantity and markup arrive as
// text and are parsed by the caller.
func itemForm(subject, quantity, unit, unitCost, markup *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			requiredInput("Subject", subject),
			numberInput("Quantity", "1", quantity),
			huh.NewInput().Title("Unit").Placeholder("each").Value(unit),
			huh.NewInput().Title("Unit cost").Placeholder("₹0").Value(unitCost),
			numberInput("Markup", "0", markup),
		),
	)
}
