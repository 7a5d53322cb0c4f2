// Command edax runs the engine's local invocation shell: commands are
// read from stdin and replies are written to stdout, the narrow
// external interface spec.md §6 describes around the search CORE.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/edaxgo/internal/book"
	"github.com/hailam/edaxgo/internal/config"
	"github.com/hailam/edaxgo/internal/eval"
	"github.com/hailam/edaxgo/internal/hashtable"
	"github.com/hailam/edaxgo/internal/protocol"
	"github.com/hailam/edaxgo/internal/search"
	"github.com/hailam/edaxgo/internal/store"
)

var errNoWeightsPath = errors.New("no -weights path given")

var (
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
	weightsPath  = flag.String("weights", "", "path to an evaluation weight file (classical pattern weights, all-zero if unset)")
	bookPath     = flag.String("book", "", "path to an opening book file")
	log2Main     = flag.Int("hash-main", 0, "log2 bucket count for the main hash table (0: use the persisted or default config)")
	log2PV       = flag.Int("hash-pv", 0, "log2 bucket count for the PV hash table (0: use the persisted or default config)")
	log2Shallow  = flag.Int("hash-shallow", 0, "log2 bucket count for the shallow hash table (0: use the persisted or default config)")
	workers      = flag.Int("workers", 0, "number of YBWC helper goroutines (0: use the persisted or default config)")
	noPersist    = flag.Bool("no-persist", false, "skip opening the local BadgerDB store (hash config and stats are not persisted across runs)")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	var st *store.Store
	hashCfg := config.DefaultHashConfig()
	if !*noPersist {
		var err error
		st, err = store.Open()
		if err != nil {
			log.Printf("warning: local store unavailable, hash config and stats will not persist: %v", err)
		} else {
			defer st.Close()
			if hashCfg, err = st.LoadHashConfig(); err != nil {
				log.Printf("warning: could not load persisted hash config, using defaults: %v", err)
				hashCfg = config.DefaultHashConfig()
			}
		}
	}

	if *log2Main > 0 {
		hashCfg.Log2SizeMain = *log2Main
	}
	if *log2PV > 0 {
		hashCfg.Log2SizePV = *log2PV
	}
	if *log2Shallow > 0 {
		hashCfg.Log2SizeShallow = *log2Shallow
	}
	if *workers > 0 {
		hashCfg.NWorkers = *workers
	}
	if err := hashCfg.Validate(); err != nil {
		log.Fatalf("invalid hash configuration: %v", err)
	}
	if st != nil {
		if err := st.SaveHashConfig(hashCfg); err != nil {
			log.Printf("warning: could not persist hash config: %v", err)
		}
	}

	weights, err := loadWeights(*weightsPath)
	if err != nil {
		log.Printf("warning: %v (using an all-zero weight set)", err)
		weights = eval.ZeroWeights()
	}

	bk, err := loadBook(*bookPath)
	if err != nil {
		log.Printf("warning: book not loaded: %v", err)
		bk = book.New()
	}

	tables := newTables(hashCfg)
	sched := search.NewScheduler(hashCfg.NWorkers)

	sh := protocol.New(weights, tables, sched, bk, st, os.Stdout)
	sh.Run(os.Stdin)
}

func newTables(cfg config.HashConfig) *search.Tables {
	return &search.Tables{
		Main:    hashtable.NewMain(cfg.Log2SizeMain),
		PV:      hashtable.NewPV(cfg.Log2SizePV),
		Shallow: hashtable.NewShallow(cfg.Log2SizeShallow),
	}
}

func loadWeights(path string) (*eval.Weights, error) {
	if path == "" {
		return nil, errNoWeightsPath
	}
	return eval.LoadWeights(path)
}

func loadBook(path string) (*book.Book, error) {
	if path == "" {
		return book.New(), nil
	}
	return book.Load(path)
}
