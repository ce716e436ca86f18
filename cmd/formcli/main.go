// Command formcli is the interactive terminal frontend for the submission
// record service. It renders the stored submissions as a table and turns
// user commands into API calls: list, add, edit, delete.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tbourn/go-form-backend/internal/client"
	"github.com/tbourn/go-form-backend/internal/sysutil"
	"github.com/tbourn/go-form-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	baseURL := sysutil.FirstNonEmpty(os.Getenv("API_URL"), "http://localhost:8080/api")

	app := newApp(baseURL)
	app.run(context.Background())
}

// app bundles the controller, the stdin reader, and the output printer for
// the command loop.
type app struct {
	ctrl   *client.Controller
	reader *bufio.Reader
	out    *message.Printer
}

func newApp(baseURL string) *app {
	reader := bufio.NewReader(os.Stdin)
	api := client.New(baseURL, nil)
	confirmer := client.ConfirmerFunc(func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
	return &app{
		ctrl:   client.NewController(api, confirmer),
		reader: reader,
		out:    message.NewPrinter(language.English),
	}
}

func (a *app) run(ctx context.Context) {
	fmt.Println("Submission manager. Commands: list, add, edit <id>, delete <id>, help, quit")
	a.ctrl.Load(ctx)
	a.render()

	for {
		fmt.Print("> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch strings.ToLower(cmd) {
		case "list", "ls":
			a.ctrl.Load(ctx)
			a.render()
		case "add":
			a.add(ctx)
		case "edit":
			a.edit(ctx, args)
		case "delete", "del", "rm":
			a.delete(ctx, args)
		case "help":
			fmt.Println("Commands: list, add, edit <id>, delete <id>, help, quit")
		case "quit", "exit", "q":
			return
		default:
			fmt.Printf("unknown command %q (try 'help')\n", cmd)
		}
	}
}

// add prompts for the three form fields and submits a new record.
func (a *app) add(ctx context.Context) {
	a.ctrl.SetForm(client.SubmissionInput{
		Username: a.prompt("Username"),
		Email:    a.prompt("Email"),
		Phone:    a.prompt("Phone"),
	})
	a.ctrl.SubmitNew(ctx)
	a.render()
}

// edit opens the row named by args for editing, prompts for replacement
// values (empty keeps the current one), and submits the update.
func (a *app) edit(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: edit <id>")
		return
	}
	id := utils.ParseUintDefault(args[0], 0)
	if id == 0 || !a.ctrl.OpenEdit(id) {
		fmt.Printf("no submission with id %s in the current list (try 'list' first)\n", args[0])
		return
	}

	v := a.ctrl.Snapshot()
	fmt.Printf("Editing submission #%d (empty input keeps the current value)\n", v.Editing.ID)
	form := v.EditForm
	if s := a.prompt(fmt.Sprintf("Username [%s]", form.Username)); s != "" {
		form.Username = s
	}
	if s := a.prompt(fmt.Sprintf("Email [%s]", form.Email)); s != "" {
		form.Email = s
	}
	if s := a.prompt(fmt.Sprintf("Phone [%s]", form.Phone)); s != "" {
		form.Phone = s
	}
	a.ctrl.SetEditForm(form)
	a.ctrl.SubmitEdit(ctx)
	a.render()
}

func (a *app) delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: delete <id>")
		return
	}
	id := utils.ParseUintDefault(args[0], 0)
	if id == 0 {
		fmt.Println("id must be a positive integer")
		return
	}
	a.ctrl.RequestDelete(ctx, id)
	a.render()
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// render prints the controller state: an error line if any, then the
// loading indicator, the empty-state message, or the table.
func (a *app) render() {
	v := a.ctrl.Snapshot()

	if v.Err != "" {
		fmt.Printf("Error: %s\n", v.Err)
	}

	switch {
	case v.Loading && len(v.Submissions) == 0:
		fmt.Println("Loading data...")
	case len(v.Submissions) == 0:
		fmt.Println("No data available. Add an entry or run 'list'.")
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tPHONE\tCREATED")
		for _, s := range v.Submissions {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				s.ID, s.Username, s.Email, s.Phone, s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		w.Flush()
		a.out.Printf("%d submissions\n", len(v.Submissions))
	}
}
