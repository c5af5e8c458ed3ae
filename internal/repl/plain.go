package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

const banner = "Math Expression Parser (type 'help' for commands, 'exit' to quit)"

// RunPlain reads lines from in until exit or EOF, writing unstyled output
// to out.
func RunPlain(ctx context.Context, s *Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, banner)
	fmt.Fprintln(out, "-------------------------------------------------------------------")

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "\nEnter a math expression or command: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		var r Reply
		if cmd := ParseCommand(sc.Text()); cmd.Kind == KindQuery {
			fmt.Fprintln(out, "Processing expression...")
			res, err := s.proc.Process(ctx, cmd.Arg)
			r = s.Complete(res, err)
		} else {
			r = s.Execute(cmd)
		}
		for _, b := range r.Blocks {
			fmt.Fprintln(out)
			fmt.Fprintln(out, b.Text)
		}
		if r.Exit {
			return nil
		}
	}
}
