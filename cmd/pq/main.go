package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/ergochat/readline"
	"github.com/pkg/errors"
	pq "github.com/void-/priority-queue"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),

	readline.PcItem("push"),
	readline.PcItem("pop"),
	readline.PcItem("peek"),
	readline.PcItem("len"),
	readline.PcItem("rand"),
	readline.PcItem("drain"),

	readline.PcItem("check"),
	readline.PcItem("dump"),
	readline.PcItem("stats"),

	readline.PcItem("exit"),
	readline.PcItem("quit"),
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

const help = `push N [N ...]  push integers onto the queue
pop [N]         pop the minimum, N times
peek            show the minimum without removing it
len             show the element count and backing capacity
rand N          push N random integers
drain           pop everything, printing in order
check           verify the heap-order invariant
dump            print every position with its parent/child links
stats           show operation counters
exit            quit`

func parseInts(args []string) (vals []int64, err error) {
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad integer %q", arg)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

var errNoArg = errors.New("argument required")

func run(heap *pq.Heap[int64], cmd string, args []string) (err error) {
	switch cmd {
	case "help":
		fmt.Println(help)
	case "push":
		if len(args) == 0 {
			return errors.Wrap(errNoArg, "push")
		}
		vals, err := parseInts(args)
		if err != nil {
			return err
		}
		for _, v := range vals {
			heap.Push(v)
		}
	case "pop":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "bad count %q", args[0])
			}
			n = v
		}
		for i := 0; i < n; i++ {
			min, err := heap.Pop()
			if err != nil {
				return err
			}
			fmt.Println(min)
		}
	case "peek":
		min, err := heap.Peek()
		if err != nil {
			return err
		}
		fmt.Println(min)
	case "len":
		fmt.Printf("len %d cap %d\n", heap.Len(), heap.Cap())
	case "rand":
		if len(args) == 0 {
			return errors.Wrap(errNoArg, "rand")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, "bad count %q", args[0])
		}
		for i := 0; i < n; i++ {
			heap.Push(rand.Int63())
		}
	case "drain":
		for heap.Len() > 0 {
			min, _ := heap.Pop()
			fmt.Println(min)
		}
	case "check":
		if heap.CheckInvariant() {
			fmt.Println("ok")
		} else {
			fmt.Println("BROKEN")
		}
	case "dump":
		heap.Dump(os.Stdout)
	case "stats":
		s := heap.Stats()
		fmt.Printf("pushes %d pops %d misses %d len %d cap %d\n",
			s.Pushes(), s.Pops(), s.Misses(), s.Length(), s.Capacity())
	default:
		_, _ = fmt.Fprintf(os.Stderr, "command unknown: %s\n", cmd)
	}
	return nil
}

func main() {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "◌ ",
		HistoryFile:     ".pq_cmd_log.txt",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	heap := pq.NewOrdered[int64]()

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		args := strings.Fields(line)
		cmd := args[0]
		args = args[1:]

		if cmd == "exit" || cmd == "quit" {
			os.Exit(0)
		}
		if err = run(heap, cmd, args); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error executing %s: %s\n", cmd, err.Error())
		}
	}
}
