// simlab generates congruential pseudo-random sequences and runs the
// Monte-Carlo teaching scenarios from the command line.
//
//	simlab linear -seed 1 -k 0 -c 1 -p 16 -n 3 -d 2
//	simlab multiplicative -seed 17 -k 2 -p 1000 -count -family 5+8k
//	simlab dice -reps 30 -games 10
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

type command struct {
	help string
	run  func(args []string, out io.Writer) error
}

var commands = map[string]command{
	"linear":          {linearHelp, runLinear},
	"multiplicative":  {multiplicativeHelp, runMultiplicative},
	"params":          {paramsHelp, runParams},
	"dice":            {diceHelp, runDice},
	"inventory":       {inventoryHelp, runInventory},
	"shop":            {shopHelp, runShop},
	"eggs":            {eggsHelp, runEggs},
	"fixed-interest":  {fixedInterestHelp, runFixedInterest},
	"tiered-interest": {tieredInterestHelp, runTieredInterest},
}

func printHelp(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: simlab <command> [flags]")
	fmt.Fprintln(w, "available commands:", strings.Join(names, ", "))
	for _, name := range names {
		fmt.Fprint(w, "\n", commands[name].help)
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		printHelp(os.Stderr)
		os.Exit(1)
	}

	switch name := os.Args[1]; name {
	case "help", "-help", "--help", "-h", "--h":
		printHelp(os.Stdout)
	default:
		cmd, ok := commands[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command %q.\n", name)
			printHelp(os.Stderr)
			os.Exit(1)
		}
		if err := cmd.run(os.Args[2:], os.Stdout); err != nil && !errors.Is(err, flag.ErrHelp) {
			os.Exit(1)
		}
	}
}
