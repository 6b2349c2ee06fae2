package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"golang.org/x/term"

	"greetbox/pkg/form"
)

var greetCmd = &cobra.Command{
	Use:   "greet [name]",
	Short: "Submit a name to the greeting form",
	Long: `Submit a name to the greeting form and print the greeting.

With a name argument the greeting is printed once. Without arguments each
input line is submitted; greetings are printed as they arrive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGreet,
}

func runGreet(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var forms *form.Factory
	app := fx.New(
		coreModules(),
		quietLogging(),
		fx.Populate(&forms),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("starting greetbox: %w", err)
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		return greetOnce(ctx, forms, args[0], out)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return greetInteractive(ctx, forms)
	}
	return greetLines(ctx, forms, cmd.InOrStdin(), out)
}

// greetOnce submits a single name and prints the resulting greeting.
func greetOnce(ctx context.Context, forms *form.Factory, name string, out io.Writer) error {
	f := forms.New(ctx)
	defer f.Close()

	f.OnSubmit(form.NameEvent(name))
	f.Wait()

	if f.Stats().Failed > 0 {
		return fmt.Errorf("greeting for %q failed, see the log for details", name)
	}
	_, err := fmt.Fprintln(out, f.State().GreetingText)
	return err
}

// greetLines submits every line of r in order, waiting for each greeting.
func greetLines(ctx context.Context, forms *form.Factory, r io.Reader, out io.Writer) error {
	f := forms.New(ctx)
	defer f.Close()

	cancel := f.Subscribe(func(ds form.DisplayState) {
		fmt.Fprintln(out, ds.GreetingText)
	})
	defer cancel()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		f.OnSubmit(form.NameEvent(strings.TrimRight(scanner.Text(), "\r")))
		f.Wait()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading names: %w", err)
	}
	if failed := f.Stats().Failed; failed > 0 {
		return fmt.Errorf("%d greeting(s) failed, see the log for details", failed)
	}
	return nil
}

// greetInteractive runs a readline loop. Submissions do not block the
// prompt; greetings are printed whenever they resolve.
func greetInteractive(ctx context.Context, forms *form.Factory) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "name> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".greetbox_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Println("Warning: readline not available, using simple mode")
		return greetLines(ctx, forms, os.Stdin, os.Stdout)
	}
	defer rl.Close()

	f := forms.New(ctx)
	defer f.Close()

	cancel := f.Subscribe(func(ds form.DisplayState) {
		fmt.Fprintf(rl.Stdout(), "#%d %s\n", ds.Generation, ds.GreetingText)
	})
	defer cancel()

	fmt.Println("Type a name and press Enter. 'exit' or Ctrl+D quits.")
	for {
		if ctx.Err() != nil {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				f.Wait()
				fmt.Println("Goodbye!")
				return nil
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		switch strings.TrimSpace(line) {
		case "exit", "quit":
			f.Wait()
			fmt.Println("Goodbye!")
			return nil
		}

		f.OnSubmit(form.NameEvent(line))
	}
}
