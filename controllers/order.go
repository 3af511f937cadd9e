package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pizzastore/cli"
	"pizzastore/models"
	"pizzastore/utils"
)

// PlaceOrder walks the interactive order workflow: pick a store, collect
// line items against the catalog, then persist the header and its lines in
// one transaction. The order id comes from the database sequence backing
// FoodOrder, so concurrent placements never collide.
func PlaceOrder(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	storeID, err := p.ReadInt("Enter the store ID: ")
	if err != nil {
		if errors.Is(err, cli.ErrInvalidInput) {
			fmt.Fprintln(out, "Invalid store ID.")
			return nil
		}
		return err
	}

	query, args, err := QB.Select("storeID").From("Store").
		Where(squirrel.Eq{"storeID": storeID}).
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building store lookup")
	}
	var exists int
	if err := db.Get(&exists, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintln(out, "Selected store does not exist.")
			return nil
		}
		return utils.ErrorWithTrace(err, "looking up store")
	}

	var lines []models.OrderLine
	lineIndex := make(map[string]int)
	total := 0.0

	for {
		name, err := p.ReadLine("Enter item name (or 'done' to finish): ")
		if err != nil {
			return err
		}
		if name == "" || strings.EqualFold(name, "done") {
			break
		}

		query, args, err := QB.Select("price").From("Items").
			Where(squirrel.Eq{"itemName": name}).
			ToSql()
		if err != nil {
			return utils.ErrorWithTrace(err, "building item lookup")
		}
		var price float64
		if err := db.Get(&price, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				fmt.Fprintln(out, "Item not found.")
				continue
			}
			return utils.ErrorWithTrace(err, "looking up item")
		}

		quantity, err := p.ReadInt("Enter quantity: ")
		if err != nil {
			if errors.Is(err, cli.ErrInvalidInput) {
				fmt.Fprintln(out, "Invalid quantity; order abandoned.")
				return nil
			}
			return err
		}
		if quantity < 1 {
			fmt.Fprintln(out, "Quantity must be at least 1.")
			continue
		}

		// Re-ordering the same item folds into a single line.
		if i, ok := lineIndex[name]; ok {
			lines[i].Quantity += quantity
		} else {
			lineIndex[name] = len(lines)
			lines = append(lines, models.OrderLine{ItemName: name, Quantity: quantity})
		}
		total += price * float64(quantity)
	}

	if len(lines) == 0 {
		fmt.Fprintln(out, "No items ordered.")
		return nil
	}

	var orderID int
	err = db.WithinTransaction(func(tx *sqlx.Tx) error {
		query, args, err := QB.Insert("FoodOrder").
			Columns("login", "storeID", "totalPrice", "orderTimestamp", "orderStatus").
			Values(sess.Login, storeID, total, time.Now(), models.StatusIncomplete).
			Suffix("RETURNING orderID").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowx(query, args...).Scan(&orderID); err != nil {
			return err
		}

		for _, line := range lines {
			query, args, err := QB.Insert("ItemsInOrder").
				Columns("orderID", "itemName", "quantity").
				Values(orderID, line.ItemName, line.Quantity).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(query, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorWithTrace(err, "placing order")
	}

	fmt.Fprintf(out, "Order %d placed successfully! Total: %.2f\n", orderID, total)
	return nil
}

// ViewAllOrders prints the full order-id history for a login, newest
// first. Customers see their own history; drivers and managers may name
// any login.
func ViewAllOrders(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	return viewOrderIDs(p, out, sess, 0)
}

// ViewRecentOrders prints at most the 5 most recent order ids.
func ViewRecentOrders(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	return viewOrderIDs(p, out, sess, 5)
}

func viewOrderIDs(p *cli.Prompter, out io.Writer, sess *models.Session, limit uint64) error {
	target := sess.Login
	if sess.IsStaff() {
		login, err := p.ReadLine("Enter a login to view (leave blank for your own): ")
		if err != nil {
			return err
		}
		if login != "" {
			target = login
		}
	}

	builder := QB.Select("orderID").From("FoodOrder").
		Where(squirrel.Eq{"login": target}).
		OrderBy("orderTimestamp DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building order history query")
	}

	var ids []int
	if err := db.Select(&ids, query, args...); err != nil {
		return utils.ErrorWithTrace(err, "fetching order history")
	}

	if len(ids) == 0 {
		fmt.Fprintln(out, "No orders found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintf(out, "Order ID: %d\n", id)
	}
	return nil
}

// ViewOrderInfo prints the header and aggregated line items of one order.
// Customers may inspect only their own orders; staff may inspect any.
func ViewOrderInfo(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	orderID, err := p.ReadInt("Enter the order ID: ")
	if err != nil {
		if errors.Is(err, cli.ErrInvalidInput) {
			fmt.Fprintln(out, "Invalid order ID.")
			return nil
		}
		return err
	}

	query, args, err := QB.Select("orderID", "login", "storeID", "totalPrice", "orderTimestamp", "orderStatus").
		From("FoodOrder").
		Where(squirrel.Eq{"orderID": orderID}).
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building order lookup")
	}

	var order models.Order
	if err := db.Get(&order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintln(out, "Selected order does not exist.")
			return nil
		}
		return utils.ErrorWithTrace(err, "looking up order")
	}

	if !sess.IsStaff() && order.Login != sess.Login {
		fmt.Fprintln(out, "You may only view your own orders.")
		return nil
	}

	query, args, err = QB.Select("itemName", "quantity").From("ItemsInOrder").
		Where(squirrel.Eq{"orderID": orderID}).
		OrderBy("itemName").
		ToSql()
	if err != nil {
		return utils.ErrorWithTrace(err, "building order line query")
	}
	rows, err := db.ExecuteQuery(query, args...)
	if err != nil {
		return utils.ErrorWithTrace(err, "fetching order lines")
	}

	var itemParts []string
	for _, row := range rows {
		itemParts = append(itemParts, fmt.Sprintf("%s x%s", row[0], row[1]))
	}

	fmt.Fprintf(out, "Order ID: %d\n", order.OrderID)
	fmt.Fprintf(out, "Placed: %s\n", order.OrderTimestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Total Price: %.2f\n", order.TotalPrice)
	fmt.Fprintf(out, "Status: %s\n", order.OrderStatus)
	fmt.Fprintf(out, "Items: %s\n", strings.Join(itemParts, ", "))
	return nil
}

// UpdateOrderStatus moves an order between the enumerated statuses and
// appends an audit entry recording who changed what. Drivers and managers
// only.
func UpdateOrderStatus(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	if !sess.IsStaff() {
		fmt.Fprintln(out, "Only drivers and managers may update order status.")
		return nil
	}

	orderID, err := p.ReadInt("Enter the order number of the order you want to edit: ")
	if err != nil {
		if errors.Is(err, cli.ErrInvalidInput) {
			fmt.Fprintln(out, "Invalid order number.")
			return nil
		}
		return err
	}

	statusStr, err := p.ReadLine("Enter the new order status: ")
	if err != nil {
		return err
	}
	newStatus, err := models.ParseOrderStatus(statusStr)
	if err != nil {
		fmt.Fprintln(out, "Entered order status is not valid.")
		return nil
	}

	missing := false
	err = db.WithinTransaction(func(tx *sqlx.Tx) error {
		query, args, err := QB.Select("orderStatus").From("FoodOrder").
			Where(squirrel.Eq{"orderID": orderID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}
		var oldStatus models.OrderStatus
		if err := tx.Get(&oldStatus, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				missing = true
				return nil
			}
			return err
		}

		query, args, err = QB.Update("FoodOrder").
			Set("orderStatus", newStatus).
			Where(squirrel.Eq{"orderID": orderID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}

		change := models.StatusChange{
			ID:         uuid.New(),
			OrderID:    orderID,
			FromStatus: oldStatus,
			ToStatus:   newStatus,
			ChangedBy:  sess.Login,
			ChangedAt:  time.Now(),
		}
		query, args, err = QB.Insert("OrderStatusHistory").
			Columns("id", "orderID", "fromStatus", "toStatus", "changedBy", "changedAt").
			Values(change.ID, change.OrderID, change.FromStatus, change.ToStatus, change.ChangedBy, change.ChangedAt).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(query, args...)
		return err
	})
	if err != nil {
		return utils.ErrorWithTrace(err, "updating order status")
	}
	if missing {
		fmt.Fprintln(out, "Selected order does not exist.")
		return nil
	}

	fmt.Fprintln(out, "Order status updated successfully!")
	return nil
}
