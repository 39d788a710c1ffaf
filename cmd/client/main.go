package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"SchemePortalAPI/internal/session"

	"github.com/joho/godotenv"
)

// Command-line companion to the portal API: sign in, keep the session on
// disk, and follow the live notification stream.
func main() {
	godotenv.Load()

	base := os.Getenv("PORTAL_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	statePath := os.Getenv("PORTAL_STATE")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		statePath = filepath.Join(home, ".scheme-portal-session.json")
	}

	api := newAPIClient(base)
	mgr := session.NewManager(statePath, api.openFeed)

	if len(os.Args) < 2 {
		usage()
	}

	ctx := interruptContext()
	if err := mgr.Restore(ctx); err != nil {
		log.Fatal(err)
	}

	switch os.Args[1] {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		role := fs.String("role", "citizen", "citizen | agency | admin")
		fs.Parse(os.Args[2:])
		if err := api.login(ctx, *email, *password, *role); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OTP sent, finish with: client verify -email", *email, "-otp <code>")

	case "verify":
		fs := flag.NewFlagSet("verify", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		otp := fs.String("otp", "", "one-time code from the email")
		fs.Parse(os.Args[2:])
		id, err := api.verifyLogin(ctx, *email, *otp)
		if err != nil {
			log.Fatal(err)
		}
		if err := mgr.SetUser(ctx, id); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("signed in as %s (%s), %d unread\n", id.Name, id.Role, mgr.Unread())

	case "whoami":
		id := mgr.Current()
		if id == nil {
			fmt.Println("signed out")
			return
		}
		fmt.Printf("%s <%s> role=%s unread=%d\n", id.Name, id.Email, id.Role, mgr.Unread())

	case "watch":
		if mgr.Current() == nil {
			log.Fatal("not signed in")
		}
		fmt.Printf("%d unread; watching (ctrl-c to stop)\n", mgr.Unread())
		api.watch(ctx, mgr)

	case "logout":
		if err := mgr.Logout(ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("signed out")

	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: client <command> [flags]

commands:
  login   -email -password [-role]   request a sign-in code
  verify  -email -otp                redeem the code and store the session
  whoami                             show the current session
  watch                              follow live notifications
  logout                             clear the stored session`)
	os.Exit(2)
}
