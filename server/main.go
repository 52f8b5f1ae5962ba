package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"handclass/server/engine"
	"handclass/server/store"
)

//
// ===== pretty printing =====
//

var useColor bool

const (
	colReset  = "\033[0m"
	colBold   = "\033[1m"
	colDim    = "\033[2m"
	colGreen  = "\033[32m"
	colRed    = "\033[31m"
	colYellow = "\033[33m"
	colCyan   = "\033[36m"
)

func c(code, s string) string {
	if !useColor {
		return s
	}
	return code + s + colReset
}
func bold(s string) string { return c(colBold, s) }
func dim(s string) string  { return c(colDim, s) }
func good(s string) string { return c(colGreen, s) }
func warn(s string) string { return c(colYellow, s) }
func bad(s string) string  { return c(colRed, s) }
func cyan(s string) string { return c(colCyan, s) }
func section(title string) { fmt.Printf("\n%s %s %s\n", dim("──"), bold(title), dim("──")) }

// cardTag colors red suits red.
func cardTag(cd engine.Card) string {
	if cd.Suit == engine.Hearts || cd.Suit == engine.Diamonds {
		return bad(cd.Token())
	}
	return cd.Token()
}

//
// ===== config =====
//

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func classifierFromEnv() engine.Classifier {
	return engine.Classifier{
		TieBreak:             engine.ParseTieBreak(strings.ToLower(strings.TrimSpace(os.Getenv("TIE_BREAK")))),
		RequireDistinctRanks: asBool(os.Getenv("DISTINCT_STRAIGHT")),
	}
}

func deckSeedFromEnv() uint64 {
	if s := os.Getenv("DECK_SEED"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return uint64(v)
		}
	}
	return engine.SecureSeed()
}

type options struct {
	hand    string
	hasHand bool
	serve   bool
	migrate bool
	sim     bool
}

func parseArgs(args []string) options {
	var o options
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "--serve":
			o.serve = true
		case a == "--migrate":
			o.migrate = true
		case a == "--sim":
			o.sim = true
		case a == "--hand" && i+1 < len(args):
			o.hand, o.hasHand = args[i+1], true
			i++
		case strings.HasPrefix(a, "--hand="):
			o.hand, o.hasHand = strings.TrimPrefix(a, "--hand="), true
		}
	}
	return o
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	_ = godotenv.Load()

	useColor = (os.Getenv("NO_COLOR") == "") && (strings.TrimSpace(os.Getenv("USE_COLOR")) != "0")
	opts := parseArgs(os.Args[1:])
	cl := classifierFromEnv()
	seeds := engine.NewSeedStream(deckSeedFromEnv())

	var db *store.DB
	if dsn := getenv("DATABASE_URL", ""); dsn != "" {
		p, err := store.Open(dsn)
		if err != nil {
			log.Printf("DB disabled (open failed): %v", err)
		} else {
			db = p
			defer db.Close(context.Background())
			if opts.migrate || asBool(os.Getenv("AUTO_MIGRATE")) {
				if err := store.Migrate(context.Background(), db); err != nil {
					log.Printf("migrate failed (continuing without DB): %v", err)
					db = nil
				} else {
					log.Println("migrated")
				}
			}
		}
	}

	switch {
	case opts.migrate:
		if db == nil {
			log.Fatal("--migrate needs a reachable DATABASE_URL")
		}
	case opts.serve:
		serve(db, cl, seeds.Next())
	case opts.sim:
		runSim(cl, seeds)
	default:
		if err := runOnce(db, cl, seeds, opts); err != nil {
			log.Fatal(err)
		}
	}
}

func serve(db *store.DB, cl engine.Classifier, seedBase uint64) {
	port := getenv("PORT", "8080")
	srv := &http.Server{Addr: ":" + port, Handler: Router(db, cl, seedBase), ReadTimeout: 15 * time.Second, WriteTimeout: 15 * time.Second}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	log.Printf("listening on http://localhost:%s (Ctrl+C to stop)", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// runOnce classifies --hand, or deals HAND_SIZE cards, and prints the result.
func runOnce(db *store.DB, cl engine.Classifier, seeds *engine.SeedStream, opts options) error {
	var h engine.Hand
	source := "deal"
	var skipped []string
	if opts.hasHand {
		policy := engine.CollectInvalid(&skipped)
		if asBool(os.Getenv("STRICT_TOKENS")) {
			policy = engine.RejectInvalid
		}
		var err error
		if h, err = engine.ParseHandWith(opts.hand, policy); err != nil {
			return err
		}
		source = "parse"
	} else {
		var err error
		if h, err = engine.Deal(engine.NewSource(int64(seeds.Next()|1)), atoiDef(os.Getenv("HAND_SIZE"), 5)); err != nil {
			return err
		}
	}

	section("hand")
	tags := make([]string, len(h))
	for i, cd := range h {
		tags[i] = cardTag(cd)
	}
	fmt.Printf("hand = %s\n", h)
	fmt.Printf("%s\n", strings.Join(tags, " "))
	for _, cd := range h {
		fmt.Println(cd)
	}
	for _, s := range skipped {
		fmt.Printf("%s %s\n", warn("skipped"), s)
	}
	if len(h) != 5 {
		fmt.Println(warn(fmt.Sprintf("note: %d cards; categories are only meaningful for 5", len(h))))
	}

	rep := report(h, cl)
	section("classification")
	fmt.Println(good(rep.Text))
	if rep.Library != "" {
		fmt.Printf("%s %s\n", dim("library:"), rep.Library)
	}

	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if id, err := db.RecordHand(ctx, rep.record(source)); err != nil {
			log.Printf("record hand: %v", err)
		} else {
			fmt.Printf("%s #%d\n", dim("saved"), id)
		}
	}
	return nil
}

func runSim(cl engine.Classifier, seeds *engine.SeedStream) {
	n := atoiDef(os.Getenv("SIM_HANDS"), 100000)
	t0 := time.Now()
	tally, err := simulate(engine.NewSource(int64(seeds.Next()|1)), cl, n, 5)
	if err != nil {
		log.Fatal(err)
	}
	section(fmt.Sprintf("category frequencies over %d hands", tally.Hands))
	cats := engine.Categories()
	for i := len(cats) - 1; i >= 0; i-- {
		cat := cats[i]
		lo, hi := WilsonCI95(tally.Counts[cat], tally.Hands)
		fmt.Printf("%-16s %8d  %s  %s\n", cyan(cat.String()), tally.Counts[cat],
			bold(fmt.Sprintf("%7.4f%%", 100*tally.Freq(cat))),
			dim(fmt.Sprintf("[%.4f%%, %.4f%%]", 100*lo, 100*hi)))
	}
	log.Printf("sim done in %s", time.Since(t0).Round(time.Millisecond))
}
