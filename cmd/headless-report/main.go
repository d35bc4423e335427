package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/Garsondee/Stacker/internal/tetris"
)

type runStats struct {
	runIndex int
	seed     int64
	frames   int

	status    tetris.Status
	score     int
	pieces    int
	lines     int
	spawns    [tetris.ShapeCount]int
	clears    [5]int // clears by rows removed at once, index 1..4
	maxHeight int

	firstClearTick int
	gameOverTick   int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var rows int
	var cols int

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&ticks, "ticks", 36000, "frames per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	flag.IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg := config.Default()
	cfg.Rows, cfg.Cols = rows, cols
	if err := cfg.Validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Stacker Report ===\n")
	fmt.Printf("grid=%dx%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", rows, cols, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(i+1, seed, ticks, rows, cols)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runAutopilot(runIndex int, seed int64, ticks, rows, cols int) runStats {
	sim := tetris.NewSim(
		tetris.WithGridSize(rows, cols),
		tetris.WithSimSeed(seed),
		tetris.WithAutopilot(),
	)
	maxHeight := 0
	for i := 0; i < ticks && sim.State.Running(); i++ {
		sim.Step()
		if h := stackHeight(sim.State.Grid()); h > maxHeight {
			maxHeight = h
		}
	}

	st := sim.State.Stats()
	entries := sim.Events.Entries()
	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		frames:         sim.Frames,
		status:         st.Status,
		score:          st.Score,
		pieces:         st.Pieces,
		lines:          st.Lines,
		spawns:         st.Spawns,
		maxHeight:      maxHeight,
		firstClearTick: firstTick(entries, tetris.CategoryLines, tetris.KeyClear),
		gameOverTick:   firstTick(entries, tetris.CategoryRound, tetris.KeyGameOver),
	}
	for _, e := range sim.Events.Filter(tetris.CategoryLines, tetris.KeyClear) {
		if e.NumVal > 0 && e.NumVal < len(rs.clears) {
			rs.clears[e.NumVal]++
		}
	}
	return rs
}

// stackHeight is the number of rows from the floor to the highest settled cell.
func stackHeight(g *tetris.Grid) int {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if !g.IsEmptyAt(r, c) {
				return g.Rows() - r
			}
		}
	}
	return 0
}

func firstTick(entries []tetris.Event, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// outcome classifies how a run ended.
func outcome(rs runStats) (string, string) {
	if rs.status == tetris.StatusGameOver {
		return "topped_out", fmt.Sprintf("game over at tick %d after %d pieces", rs.gameOverTick, rs.pieces)
	}
	if rs.lines == 0 {
		return "stalled", "frame limit reached without clearing a row"
	}
	return "survived", fmt.Sprintf("frame limit reached with stack height %d", rs.maxHeight)
}

func printRun(rs runStats) {
	result, reason := outcome(rs)
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result=%s (%s)\n", result, reason)
	fmt.Printf("totals: frames=%d pieces=%d lines=%d score=%d max_height=%d\n",
		rs.frames, rs.pieces, rs.lines, rs.score, rs.maxHeight)
	fmt.Printf("phase_markers: first_clear=%d game_over=%d\n", rs.firstClearTick, rs.gameOverTick)
	fmt.Printf("clears: single=%d double=%d triple=%d quad=%d\n",
		rs.clears[1], rs.clears[2], rs.clears[3], rs.clears[4])
	fmt.Printf("spawns: %s\n", formatSpawns(rs.spawns))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalScore := 0
	totalPieces := 0
	totalLines := 0
	var totalSpawns [tetris.ShapeCount]int
	var totalClears [5]int
	clearTicks := make([]int, 0, len(all))
	gameOverTicks := make([]int, 0, len(all))
	results := map[string]int{}
	best := all[0]

	for _, rs := range all {
		totalScore += rs.score
		totalPieces += rs.pieces
		totalLines += rs.lines
		for k, n := range rs.spawns {
			totalSpawns[k] += n
		}
		for i, n := range rs.clears {
			totalClears[i] += n
		}
		if rs.firstClearTick >= 0 {
			clearTicks = append(clearTicks, rs.firstClearTick)
		}
		if rs.gameOverTick >= 0 {
			gameOverTicks = append(gameOverTicks, rs.gameOverTick)
		}
		result, _ := outcome(rs)
		results[result]++
		if rs.score > best.score {
			best = rs
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: score=%.1f pieces=%.1f lines=%.1f\n",
		avg(totalScore, len(all)), avg(totalPieces, len(all)), avg(totalLines, len(all)))
	fmt.Printf("clears: single=%d double=%d triple=%d quad=%d\n",
		totalClears[1], totalClears[2], totalClears[3], totalClears[4])
	fmt.Printf("phase_marker_avg_ticks: first_clear=%s game_over=%s\n",
		avgTickString(clearTicks), avgTickString(gameOverTicks))
	fmt.Printf("results: %s\n", joinCounts(results))
	fmt.Printf("best_run: %d (seed=%d score=%d)\n", best.runIndex, best.seed, best.score)
	fmt.Printf("spawn_share: %s\n", formatShare(totalSpawns, totalPieces))
}

func formatSpawns(spawns [tetris.ShapeCount]int) string {
	parts := make([]string, 0, len(spawns))
	for k, n := range spawns {
		parts = append(parts, fmt.Sprintf("%s=%d", tetris.ShapeKind(k), n))
	}
	return strings.Join(parts, " ")
}

func formatShare(spawns [tetris.ShapeCount]int, total int) string {
	parts := make([]string, 0, len(spawns))
	for k, n := range spawns {
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total) * 100
		}
		parts = append(parts, fmt.Sprintf("%s=%.1f%%", tetris.ShapeKind(k), share))
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}
