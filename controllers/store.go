package controllers

import (
	"fmt"
	"io"

	"pizzastore/models"
	"pizzastore/utils"
)

// ViewStores lists every store in the chain.
func ViewStores(out io.Writer) error {
	query, args, err := QB.Select("storeID", "address", "city", "state", "isOpen", "reviewScore").
		From("Store").
		OrderBy("storeID").
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building store query")
	}

	var stores []models.Store
	if err := db.Select(&stores, query, args...); err != nil {
		return utils.ErrorWithTrace(err, "fetching stores")
	}

	fmt.Fprintln(out, "\nStore Info:")
	for _, s := range stores {
		fmt.Fprintf(out, "Store ID: %d\n", s.StoreID)
		fmt.Fprintf(out, "Address: %s\n", s.Address)
		fmt.Fprintf(out, "City: %s\n", s.City)
		fmt.Fprintf(out, "State: %s\n", s.State)
		fmt.Fprintf(out, "Open: %s\n", s.IsOpen)
		fmt.Fprintf(out, "Review Score: %.1f\n\n", s.ReviewScore)
	}
	return nil
}
