package controllers

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Masterminds/squirrel"

	"pizzastore/cli"
	"pizzastore/models"
	"pizzastore/utils"
)

// ViewMenu lists catalog items, optionally filtered by type and maximum
// price and optionally sorted by price. Filters are ANDed; a blank answer
// omits that predicate.
func ViewMenu(p *cli.Prompter, out io.Writer) error {
	typeOfItem, err := p.ReadLine("Enter a type (e.g. drinks, sides) to filter by type (or leave blank to skip): ")
	if err != nil {
		return err
	}

	priceStr, err := p.ReadLine("Enter a maximum price to filter by price (or leave blank to skip): ")
	if err != nil {
		return err
	}
	var maxPrice *float64
	if priceStr != "" {
		f, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			fmt.Fprintln(out, "Invalid price.")
			return nil
		}
		maxPrice = &f
	}

	fmt.Fprintln(out, "Sort by price:")
	fmt.Fprintln(out, "1. Lowest to Highest")
	fmt.Fprintln(out, "2. Highest to Lowest")
	sortChoice, err := p.ReadLine("Enter your choice (1 or 2, blank to skip): ")
	if err != nil {
		return err
	}

	builder := QB.Select("itemName", "ingredients", "typeOfItem", "price", "description").From("Items")
	if typeOfItem != "" {
		builder = builder.Where(squirrel.Eq{"typeOfItem": typeOfItem})
	}
	if maxPrice != nil {
		builder = builder.Where(squirrel.LtOrEq{"price": *maxPrice})
	}
	switch sortChoice {
	case "1":
		builder = builder.OrderBy("price ASC")
	case "2":
		builder = builder.OrderBy("price DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building menu query")
	}

	var items []models.Item
	if err := db.Select(&items, query, args...); err != nil {
		return utils.ErrorWithTrace(err, "fetching menu")
	}

	fmt.Fprintln(out, "\nMenu Items:")
	for _, item := range items {
		fmt.Fprintf(out, "Name: %s\n", item.ItemName)
		fmt.Fprintf(out, "Type: %s\n", item.TypeOfItem)
		fmt.Fprintf(out, "Price: %.2f\n", item.Price)
		fmt.Fprintf(out, "Description: %s\n\n", item.Description)
	}
	return nil
}

// UpdateMenu lets a manager edit an existing item field by field (blank
// answers keep the current value) or add a new item with every field
// mandatory.
func UpdateMenu(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	if sess.Role != models.RoleManager {
		fmt.Fprintln(out, "Only managers may update the menu.")
		return nil
	}

	choice, err := promptChoice(p, out, []string{"Update Existing Item", "Add New Item", "Go Back"})
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		return updateExistingItem(p, out)
	case 2:
		return addNewItem(p, out)
	}
	return nil
}

func updateExistingItem(p *cli.Prompter, out io.Writer) error {
	itemName, err := p.ReadLine("Enter the item name of the item you want to edit: ")
	if err != nil {
		return err
	}

	newName, err := p.ReadLine("Enter new item name (leave empty to skip): ")
	if err != nil {
		return err
	}
	newIngredients, err := p.ReadLine("Enter new ingredient(s) (leave empty to skip): ")
	if err != nil {
		return err
	}
	newType, err := p.ReadLine("Enter new item type (leave empty to skip): ")
	if err != nil {
		return err
	}
	newPriceStr, err := p.ReadLine("Enter new price (leave empty to skip): ")
	if err != nil {
		return err
	}
	newDescription, err := p.ReadLine("Enter new description (leave empty to skip): ")
	if err != nil {
		return err
	}

	builder := QB.Update("Items")
	changed := false
	if newName != "" {
		builder = builder.Set("itemName", newName)
		changed = true
	}
	if newIngredients != "" {
		builder = builder.Set("ingredients", newIngredients)
		changed = true
	}
	if newType != "" {
		builder = builder.Set("typeOfItem", newType)
		changed = true
	}
	if newPriceStr != "" {
		price, err := strconv.ParseFloat(newPriceStr, 64)
		if err != nil || price < 0 {
			fmt.Fprintln(out, "Invalid price.")
			return nil
		}
		builder = builder.Set("price", price)
		changed = true
	}
	if newDescription != "" {
		builder = builder.Set("description", newDescription)
		changed = true
	}

	if !changed {
		fmt.Fprintln(out, "Nothing to update.")
		return nil
	}

	query, args, err := builder.Where(squirrel.Eq{"itemName": itemName}).ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building item update")
	}

	n, err := db.ExecuteUpdate(query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			fmt.Fprintln(out, "An item with the new name already exists.")
			return nil
		}
		return utils.ErrorWithTrace(err, "updating item")
	}
	if n == 0 {
		fmt.Fprintln(out, "Selected item does not exist.")
		return nil
	}

	fmt.Fprintln(out, "Item updated successfully!")
	return nil
}

func addNewItem(p *cli.Prompter, out io.Writer) error {
	itemName, err := p.ReadLine("Enter the item name of the item you want to add: ")
	if err != nil {
		return err
	}
	ingredients, err := p.ReadLine("Enter ingredient(s): ")
	if err != nil {
		return err
	}
	typeOfItem, err := p.ReadLine("Enter item type: ")
	if err != nil {
		return err
	}
	price, err := p.ReadFloat("Enter price: ")
	if err != nil {
		if errors.Is(err, cli.ErrInvalidInput) {
			fmt.Fprintln(out, "Invalid price.")
			return nil
		}
		return err
	}
	description, err := p.ReadLine("Enter description: ")
	if err != nil {
		return err
	}

	if itemName == "" || ingredients == "" || typeOfItem == "" || description == "" {
		fmt.Fprintln(out, "Empty values are not allowed.")
		return nil
	}
	if price < 0 {
		fmt.Fprintln(out, "Invalid price.")
		return nil
	}

	query, args, err := QB.Insert("Items").
		Columns("itemName", "ingredients", "typeOfItem", "price", "description").
		Values(itemName, ingredients, typeOfItem, price, description).
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building item insert")
	}

	if _, err := db.ExecuteUpdate(query, args...); err != nil {
		if isUniqueViolation(err) {
			fmt.Fprintln(out, "Selected item already exists.")
			return nil
		}
		return utils.ErrorWithTrace(err, "inserting item")
	}

	fmt.Fprintln(out, "Item successfully created!")
	return nil
}
