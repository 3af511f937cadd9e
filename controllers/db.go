package controllers

import (
	"errors"
	"fmt"
	"io"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"pizzastore/cli"
	"pizzastore/database"
)

var (
	db *database.Gateway
	QB = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
)

func SetDB(gateway *database.Gateway) {
	db = gateway
}

// isUniqueViolation reports whether err is the database rejecting a
// duplicate key, e.g. an already-taken login or item name.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// promptChoice renders a numbered submenu and re-prompts until the answer
// is one of its options. Returns the 1-based choice.
func promptChoice(p *cli.Prompter, out io.Writer, options []string) (int, error) {
	for {
		fmt.Fprintln(out)
		for i, opt := range options {
			fmt.Fprintf(out, "%d. %s\n", i+1, opt)
		}
		choice, err := p.ReadChoice()
		if err != nil {
			return 0, err
		}
		if choice >= 1 && choice <= len(options) {
			return choice, nil
		}
		fmt.Fprintln(out, "Please select a valid option.")
	}
}
