package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/Masterminds/squirrel"

	"pizzastore/cli"
	"pizzastore/models"
	"pizzastore/utils"
)

// CreateAccount prompts for the new user's credentials and inserts the row
// with no favorite item. The role must be one of the enumerated three; a
// taken login is reported, not fatal.
func CreateAccount(p *cli.Prompter, out io.Writer) error {
	login, err := p.ReadLine("Enter username: ")
	if err != nil {
		return err
	}
	password, err := p.ReadLine("Enter password: ")
	if err != nil {
		return err
	}
	roleStr, err := p.ReadLine("Enter role (customer, driver or manager): ")
	if err != nil {
		return err
	}
	phone, err := p.ReadLine("Enter phone number: ")
	if err != nil {
		return err
	}

	if login == "" || password == "" {
		fmt.Fprintln(out, "Username and password are required.")
		return nil
	}

	role, err := models.ParseRole(roleStr)
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrorWithTrace(err, "hashing password")
	}

	query, args, err := QB.Insert("Users").
		Columns("login", "password", "role", "favoriteItems", "phoneNum").
		Values(login, hashed, role, nil, phone).
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building insert")
	}

	if _, err := db.ExecuteUpdate(query, args...); err != nil {
		if isUniqueViolation(err) {
			fmt.Fprintln(out, "This username is already taken.")
			return nil
		}
		return utils.ErrorWithTrace(err, "creating user")
	}

	fmt.Fprintln(out, "User successfully created!")
	return nil
}

// LogIn verifies the login/password pair and returns the session value the
// rest of the program authorizes against. No match returns a nil session
// and establishes no role.
func LogIn(p *cli.Prompter, out io.Writer) (*models.Session, error) {
	login, err := p.ReadLine("Enter your username: ")
	if err != nil {
		return nil, err
	}
	password, err := p.ReadLine("Enter your password: ")
	if err != nil {
		return nil, err
	}

	query, args, err := QB.Select("login", "password", "role").
		From("Users").
		Where(squirrel.Eq{"login": login}).
		ToSql()
	if err != nil {
		return nil, utils.ErrorWithTrace(err, "building select")
	}

	var user models.User
	if err := db.Get(&user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintln(out, "Invalid username or password.")
			return nil, nil
		}
		return nil, utils.ErrorWithTrace(err, "looking up user")
	}

	if err := utils.CheckPassword(user.Password, password); err != nil {
		fmt.Fprintln(out, "Invalid username or password.")
		return nil, nil
	}

	fmt.Fprintln(out, "Login successful!")
	return &models.Session{Login: user.Login, Role: user.Role}, nil
}
