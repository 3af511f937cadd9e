package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the privilege tier a session acts under.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleManager  Role = "manager"
)

// ParseRole validates a free-text role against the enumerated set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleDriver, RoleManager:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q: must be customer, driver or manager", s)
}

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	StatusIncomplete OrderStatus = "incomplete"
	StatusComplete   OrderStatus = "complete"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusIncomplete, StatusComplete:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("invalid order status %q: must be incomplete or complete", s)
}

// Session identifies the authenticated user for the duration of a login.
// It is passed explicitly into every operation that needs authorization.
type Session struct {
	Login string
	Role  Role
}

// IsStaff reports whether the session may use driver/manager operations.
func (s *Session) IsStaff() bool {
	return s.Role == RoleDriver || s.Role == RoleManager
}

type User struct {
	Login        string         `db:"login"`
	Password     string         `db:"password"`
	Role         Role           `db:"role"`
	FavoriteItem sql.NullString `db:"favoriteitems"`
	PhoneNum     string         `db:"phonenum"`
}

type Item struct {
	ItemName    string  `db:"itemname"`
	Ingredients string  `db:"ingredients"`
	TypeOfItem  string  `db:"typeofitem"`
	Price       float64 `db:"price"`
	Description string  `db:"description"`
}

type Store struct {
	StoreID     int     `db:"storeid"`
	Address     string  `db:"address"`
	City        string  `db:"city"`
	State       string  `db:"state"`
	IsOpen      string  `db:"isopen"`
	ReviewScore float64 `db:"reviewscore"`
}

type Order struct {
	OrderID        int         `db:"orderid"`
	Login          string      `db:"login"`
	StoreID        int         `db:"storeid"`
	TotalPrice     float64     `db:"totalprice"`
	OrderTimestamp time.Time   `db:"ordertimestamp"`
	OrderStatus    OrderStatus `db:"orderstatus"`
}

// OrderLine ties an order to one item; it has no identity of its own.
type OrderLine struct {
	OrderID  int    `db:"orderid"`
	ItemName string `db:"itemname"`
	Quantity int    `db:"quantity"`
}

// StatusChange is one audit entry recording an order status transition.
type StatusChange struct {
	ID         uuid.UUID   `db:"id"`
	OrderID    int         `db:"orderid"`
	FromStatus OrderStatus `db:"fromstatus"`
	ToStatus   OrderStatus `db:"tostatus"`
	ChangedBy  string      `db:"changedby"`
	ChangedAt  time.Time   `db:"changedat"`
}
