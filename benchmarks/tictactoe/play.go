package tictactoe

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/zeu5/policy-iteration/core"
)

// Play runs games between the agent, playing circle and opening, and a human
// reading moves from in. It returns when the human declines another game or
// in is exhausted.
func Play(agent *core.Agent, in io.Reader, out io.Writer, colored bool) error {
	au := aurora.NewAurora(colored)
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	for {
		fmt.Fprintln(out, "A new game started against the bot.")
		board := Board{}
		fmt.Fprintf(out, "\n%s\n\n", board.Render(au))

	Game:
		for {
			action, ok := agent.QueryAction(board.ID())
			if !ok {
				fmt.Fprintln(out, au.Yellow("It's a draw."))
				break
			}
			next, err := board.Apply(action, Circle)
			if err != nil {
				return fmt.Errorf("bot move %s: %w", action, err)
			}
			board = next
			fmt.Fprintf(out, "The bot played at %s\n\n%s\n\n", action, board.Render(au))
			if board.HasWon(Circle) {
				fmt.Fprintln(out, au.Red("The bot won!"))
				break
			}
			if board.Full() {
				fmt.Fprintln(out, au.Yellow("It's a draw."))
				break
			}

			for {
				possible := board.Actions()
				fmt.Fprintf(out, "Your turn, type one of: %s\n", strings.Join(possible, " "))
				play, ok := readLine()
				if !ok {
					return scanner.Err()
				}
				if !slices.Contains(possible, play) {
					fmt.Fprintln(out, "Please try again with a valid play.")
					continue
				}
				board, _ = board.Apply(play, Cross)
				fmt.Fprintf(out, "You played at %s\n\n%s\n\n", play, board.Render(au))
				break
			}
			if board.HasWon(Cross) {
				fmt.Fprintln(out, au.Green("You won!"))
				break Game
			}
		}

		fmt.Fprintln(out, "End of game! Play again? (y/n)")
		answer, ok := readLine()
		if !ok {
			return scanner.Err()
		}
		if answer != "y" {
			return nil
		}
	}
}
