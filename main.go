package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"pizzastore/cli"
	"pizzastore/controllers"
	"pizzastore/database"
	"pizzastore/models"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <dbname> <port> <user>\n", os.Args[0])
		os.Exit(1)
	}
	dbname, port, user := os.Args[1], os.Args[2], os.Args[3]

	// .env is optional; the database coordinates arrive as arguments.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %s", err)
	}
	host := getEnv("DB_HOST", "localhost")
	sslMode := getEnv("DB_SSLMODE", "disable")
	migRoot := getEnv("MIGRATIONS_ROOT", "database/migrations")

	// The database account logs in with an empty password.
	url := fmt.Sprintf("postgres://%s:@%s:%s/%s?sslmode=%s", user, host, port, dbname, sslMode)

	fmt.Println("Connecting to database...")
	db, err := database.Connect(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error - Unable to Connect to Database: %s\n", err)
		fmt.Println("Make sure postgres is running on this machine")
		os.Exit(1)
	}
	defer func() {
		fmt.Println("Disconnecting from database... Bye!")
		db.Close()
	}()
	fmt.Println("Done")

	if err := database.Migrate(migRoot, url); err != nil {
		log.Println(err)
	}

	controllers.SetDB(db)
	run(cli.NewPrompter(os.Stdin, os.Stdout), os.Stdout)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(p *cli.Prompter, out io.Writer) {
	greeting(out)

	for {
		fmt.Fprintln(out, "MAIN MENU")
		fmt.Fprintln(out, "---------")
		fmt.Fprintln(out, "1. Create user")
		fmt.Fprintln(out, "2. Log in")
		fmt.Fprintln(out, "9. < EXIT")

		choice, err := p.ReadChoice()
		if err != nil {
			return
		}

		switch choice {
		case 1:
			if err := controllers.CreateAccount(p, out); err != nil {
				log.Println(err)
			}
		case 2:
			sess, err := controllers.LogIn(p, out)
			if err != nil {
				log.Println(err)
				continue
			}
			if sess != nil {
				if err := userMenu(p, out, sess); err != nil {
					return
				}
			}
		case 9:
			return
		default:
			fmt.Fprintln(out, "Unrecognized choice!")
		}
	}
}

// userMenu loops until the user logs out. A non-nil return means the input
// stream ended and the whole program should stop.
func userMenu(p *cli.Prompter, out io.Writer, sess *models.Session) error {
	for {
		fmt.Fprintln(out, "MAIN MENU")
		fmt.Fprintln(out, "---------")
		fmt.Fprintln(out, "1. View Profile")
		fmt.Fprintln(out, "2. Update Profile")
		fmt.Fprintln(out, "3. View Menu")
		fmt.Fprintln(out, "4. Place Order")
		fmt.Fprintln(out, "5. View Full Order ID History")
		fmt.Fprintln(out, "6. View Past 5 Order IDs")
		fmt.Fprintln(out, "7. View Order Information")
		fmt.Fprintln(out, "8. View Stores")
		if sess.IsStaff() {
			fmt.Fprintln(out, "9. Update Order Status")
		}
		if sess.Role == models.RoleManager {
			fmt.Fprintln(out, "10. Update Menu")
			fmt.Fprintln(out, "11. Update User")
		}
		fmt.Fprintln(out, ".........................")
		fmt.Fprintln(out, "20. Log out")

		choice, err := p.ReadChoice()
		if err != nil {
			return err
		}

		var opErr error
		switch choice {
		case 1:
			opErr = controllers.ViewProfile(out, sess)
		case 2:
			opErr = controllers.UpdateProfile(p, out, sess)
		case 3:
			opErr = controllers.ViewMenu(p, out)
		case 4:
			opErr = controllers.PlaceOrder(p, out, sess)
		case 5:
			opErr = controllers.ViewAllOrders(p, out, sess)
		case 6:
			opErr = controllers.ViewRecentOrders(p, out, sess)
		case 7:
			opErr = controllers.ViewOrderInfo(p, out, sess)
		case 8:
			opErr = controllers.ViewStores(out)
		case 9:
			opErr = controllers.UpdateOrderStatus(p, out, sess)
		case 10:
			opErr = controllers.UpdateMenu(p, out, sess)
		case 11:
			opErr = controllers.UpdateUser(p, out, sess)
		case 20:
			return nil
		default:
			fmt.Fprintln(out, "Unrecognized choice!")
		}

		// Database failures end the operation, never the process.
		if opErr != nil {
			log.Println(opErr)
		}
	}
}

func greeting(out io.Writer) {
	fmt.Fprintln(out, "\n*******************************************************")
	fmt.Fprintln(out, "              Pizza Store Ordering System")
	fmt.Fprintln(out, "*******************************************************")
}
