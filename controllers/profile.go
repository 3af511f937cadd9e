package controllers

import (
	"fmt"
	"io"

	"github.com/Masterminds/squirrel"

	"pizzastore/cli"
	"pizzastore/models"
	"pizzastore/utils"
)

// ViewProfile prints the session user's favorite item and phone number.
func ViewProfile(out io.Writer, sess *models.Session) error {
	query, args, err := QB.Select("login", "role", "favoriteItems", "phoneNum").
		From("Users").
		Where(squirrel.Eq{"login": sess.Login}).
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building profile query")
	}

	var user models.User
	if err := db.Get(&user, query, args...); err != nil {
		return utils.ErrorWithTrace(err, "fetching profile")
	}

	favorite := "none"
	if user.FavoriteItem.Valid {
		favorite = user.FavoriteItem.String
	}
	fmt.Fprintf(out, "\nFavorite Item: %s\n", favorite)
	fmt.Fprintf(out, "Phone Number: %s\n\n", user.PhoneNum)
	return nil
}

// UpdateProfile edits the session user's favorite item, phone number or
// password. A favorite item is accepted only if it exists in the catalog;
// the update is joined against Items so the check and the write are one
// statement.
func UpdateProfile(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	choice, err := promptChoice(p, out, []string{"Update Favorite Item", "Update Phone Number", "Update Password", "Go Back"})
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		item, err := p.ReadLine("Input new favorite item: ")
		if err != nil {
			return err
		}
		query, args, err := QB.Update("Users").
			Set("favoriteItems", squirrel.Expr("i.itemName")).
			From("Items i").
			Where(squirrel.Expr("i.itemName = ?", item)).
			Where(squirrel.Eq{"Users.login": sess.Login}).
			ToSql()
		if err != nil {
			return utils.ErrorWithTrace(err, "building favorite item update")
		}
		n, err := db.ExecuteUpdate(query, args...)
		if err != nil {
			return utils.ErrorWithTrace(err, "updating favorite item")
		}
		if n == 0 {
			fmt.Fprintln(out, "Selected item does not exist in the menu.")
			return nil
		}
		fmt.Fprintln(out, "Favorite item updated successfully!")

	case 2:
		phone, err := p.ReadLine("Input new phone number: ")
		if err != nil {
			return err
		}
		query, args, err := QB.Update("Users").
			Set("phoneNum", phone).
			Where(squirrel.Eq{"login": sess.Login}).
			ToSql()
		if err != nil {
			return utils.ErrorWithTrace(err, "building phone update")
		}
		if _, err := db.ExecuteUpdate(query, args...); err != nil {
			return utils.ErrorWithTrace(err, "updating phone number")
		}
		fmt.Fprintln(out, "Phone number updated successfully!")

	case 3:
		password, err := p.ReadLine("Input new password: ")
		if err != nil {
			return err
		}
		if password == "" {
			fmt.Fprintln(out, "Password must not be empty.")
			return nil
		}
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return utils.ErrorWithTrace(err, "hashing password")
		}
		query, args, err := QB.Update("Users").
			Set("password", hashed).
			Where(squirrel.Eq{"login": sess.Login}).
			ToSql()
		if err != nil {
			return utils.ErrorWithTrace(err, "building password update")
		}
		if _, err := db.ExecuteUpdate(query, args...); err != nil {
			return utils.ErrorWithTrace(err, "updating password")
		}
		fmt.Fprintln(out, "Password updated successfully!")
	}
	return nil
}
