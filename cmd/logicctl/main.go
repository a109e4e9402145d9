// Command logicctl drives the proof engine from the terminal against local
// prover9/mace4 binaries, and provisions API tokens for the server.
//
// Usage:
//
//	logicctl prove -premise 'all x (Man(x) -> mortal(x))' -premise 'Man(socrates)' -conclusion 'mortal(socrates)'
//	logicctl model -premise 'P(a)' -domain 2
//	logicctl counterexample -premise 'P(a)' -conclusion 'P(b)'
//	logicctl check 'all x (P(x) -> Q(x))' 'p(('
//	logicctl token -label ci
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/angrysky56/mcp-logic/internal/formula"
	"github.com/angrysky56/mcp-logic/internal/metrics"
	"github.com/angrysky56/mcp-logic/internal/prover"
	"github.com/angrysky56/mcp-logic/internal/web"
)

type premiseList []string

func (p *premiseList) String() string { return fmt.Sprint(*p) }

func (p *premiseList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "prove":
		runProve(os.Args[2:])
	case "model":
		runModel(os.Args[2:], false)
	case "counterexample":
		runModel(os.Args[2:], true)
	case "check":
		runCheck(os.Args[2:])
	case "token":
		runToken(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: logicctl <prove|model|counterexample|check|token> [flags]")
	os.Exit(2)
}

func newEngine(binDir string, timeout time.Duration) *prover.Engine {
	cfg := prover.DefaultConfig()
	cfg.BinDir = binDir
	if env := os.Getenv("LADR_PATH"); cfg.BinDir == "" && env != "" {
		cfg.BinDir = env
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}

	engine, err := prover.NewEngine(cfg, metrics.New())
	if err != nil {
		log.Fatal(err)
	}
	return engine
}

func printOutcome(out *prover.Outcome) {
	fmt.Printf("status: %s  (%.2fs)\n", out.Status, out.Elapsed.Seconds())
	if out.Proof != "" {
		fmt.Println("proof:")
		fmt.Println(out.Proof)
	}
	if out.Model != nil {
		fmt.Printf("domain size: %d\n", out.Model.DomainSize)
		fmt.Println(out.Model.Interpretation)
	}
	if out.Status == prover.StatusProcessFailed && out.Stderr != "" {
		fmt.Fprintln(os.Stderr, out.Stderr)
	}
}

func reportValidation(err error) {
	if verr, ok := err.(*prover.ValidationError); ok {
		for _, r := range verr.Results {
			if r.Valid {
				continue
			}
			for _, d := range r.Errors() {
				fmt.Fprintf(os.Stderr, "%q: offset %d: %s\n", r.Formula, d.Start, d.Message)
			}
		}
		os.Exit(1)
	}
	log.Fatal(err)
}

func runProve(args []string) {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	var premises premiseList
	fs.Var(&premises, "premise", "premise formula (repeatable)")
	conclusion := fs.String("conclusion", "", "conclusion formula (required)")
	binDir := fs.String("bin", "", "directory with prover9/mace4 (default $LADR_PATH)")
	timeout := fs.Duration("timeout", 0, "per-invocation timeout (default 60s)")
	fs.Parse(args)

	if len(premises) == 0 || *conclusion == "" {
		log.Fatal("prove: at least one -premise and a -conclusion are required")
	}

	engine := newEngine(*binDir, *timeout)
	out, err := engine.Prove(context.Background(), premises, *conclusion, 0)
	if err != nil {
		reportValidation(err)
	}
	printOutcome(out)
}

func runModel(args []string, counterexample bool) {
	name := "model"
	if counterexample {
		name = "counterexample"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var premises premiseList
	fs.Var(&premises, "premise", "premise formula (repeatable)")
	conclusion := fs.String("conclusion", "", "conclusion to refute (counterexample only)")
	domain := fs.Int("domain", 0, "pinned domain size (0 searches incrementally)")
	binDir := fs.String("bin", "", "directory with prover9/mace4 (default $LADR_PATH)")
	timeout := fs.Duration("timeout", 0, "per-invocation timeout (default 60s)")
	fs.Parse(args)

	if len(premises) == 0 {
		log.Fatalf("%s: at least one -premise is required", name)
	}

	engine := newEngine(*binDir, *timeout)

	var out *prover.Outcome
	var err error
	if counterexample {
		if *conclusion == "" {
			log.Fatal("counterexample: a -conclusion is required")
		}
		out, err = engine.FindCounterexample(context.Background(), premises, *conclusion, *domain, 0)
	} else {
		out, err = engine.FindModel(context.Background(), premises, *domain, 0)
	}
	if err != nil {
		reportValidation(err)
	}
	printOutcome(out)
}

func runCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "emit results as JSON")
	fs.Parse(args)

	statements := fs.Args()
	if len(statements) == 0 {
		log.Fatal("check: pass formulas as arguments")
	}

	results := formula.ValidateAll(statements)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatal(err)
		}
		return
	}

	exit := 0
	for _, r := range results {
		mark := "ok"
		if !r.Valid {
			mark = "INVALID"
			exit = 1
		}
		fmt.Printf("%-7s %s\n", mark, r.Formula)
		for _, d := range r.Diagnostics {
			fmt.Printf("        %s at offset %d: %s\n", d.Severity, d.Start, d.Message)
		}
	}
	os.Exit(exit)
}

// runToken mints an API token directly in the database. This is how the
// first token gets created: the /api/tokens endpoint itself requires auth.
func runToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	label := fs.String("label", "", "token label (required)")
	fs.Parse(args)

	if *label == "" {
		log.Fatal("token: a -label is required")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("token: DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	store := web.NewStore(db)
	if err := store.InitSchema(ctx); err != nil {
		log.Fatal(err)
	}

	token, hash, id, err := web.NewToken()
	if err != nil {
		log.Fatal(err)
	}
	if err := store.InsertToken(ctx, id, *label, hash); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("token_id: %s\n", id)
	fmt.Printf("token:    %s\n", token)
	fmt.Println("store the token now; only its hash is kept")
}
