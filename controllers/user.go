package controllers

import (
	"fmt"
	"io"

	"github.com/Masterminds/squirrel"

	"pizzastore/cli"
	"pizzastore/models"
	"pizzastore/utils"
)

// UpdateUser lets a manager change another user's login or role. A login
// change that collides with an existing login is refused, as is any role
// outside the enumerated set.
func UpdateUser(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	if sess.Role != models.RoleManager {
		fmt.Fprintln(out, "Only managers may update users.")
		return nil
	}

	login, err := p.ReadLine("Enter the login of the user you want to edit: ")
	if err != nil {
		return err
	}

	choice, err := promptChoice(p, out, []string{"Update Login", "Update Role", "Go Back"})
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		newLogin, err := p.ReadLine("Enter new login for the user: ")
		if err != nil {
			return err
		}
		if newLogin == "" {
			fmt.Fprintln(out, "Login must not be empty.")
			return nil
		}
		query, args, err := QB.Update("Users").
			Set("login", newLogin).
			Where(squirrel.Eq{"login": login}).
			ToSql()
		if err != nil {
			return utils.ErrorWithTrace(err, "building login update")
		}
		n, err := db.ExecuteUpdate(query, args...)
		if err != nil {
			if isUniqueViolation(err) {
				fmt.Fprintln(out, "Selected login is already taken.")
				return nil
			}
			return utils.ErrorWithTrace(err, "updating login")
		}
		if n == 0 {
			fmt.Fprintln(out, "Selected user does not exist.")
			return nil
		}
		fmt.Fprintln(out, "Data updated successfully!")

	case 2:
		roleStr, err := p.ReadLine("Enter new role for the user: ")
		if err != nil {
			return err
		}
		role, err := models.ParseRole(roleStr)
		if err != nil {
			fmt.Fprintln(out, "Selected role is not valid.")
			return nil
		}
		query, args, err := QB.Update("Users").
			Set("role", role).
			Where(squirrel.Eq{"login": login}).
			ToSql()
		if err != nil {
			return utils.ErrorWithTrace(err, "building role update")
		}
		n, err := db.ExecuteUpdate(query, args...)
		if err != nil {
			return utils.ErrorWithTrace(err, "updating role")
		}
		if n == 0 {
			fmt.Fprintln(out, "Selected user does not exist.")
			return nil
		}
		fmt.Fprintln(out, "Data updated successfully!")
	}
	return nil
}
