package main

import (
	"fmt"
	"math/bits"
	"math/rand"
	"time"
	"unsafe"

	"github.com/joshuapare/memkit/mem"
	"github.com/spf13/cobra"
)

var (
	allocOps      int
	allocMaxSize  int
	allocMaxAlign int
)

func init() {
	cmd := newAllocCmd()
	cmd.Flags().IntVar(&allocOps, "ops", 100000, "Number of allocator operations")
	cmd.Flags().IntVar(&allocMaxSize, "max-size", 64*1024, "Maximum block size in bytes")
	cmd.Flags().IntVar(&allocMaxAlign, "max-align", 4096, "Maximum alignment (power of two)")
	rootCmd.AddCommand(cmd)
}

func newAllocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alloc",
		Short: "Run a randomized aligned alloc/realloc/free workload",
		Long: `The alloc command churns the aligned allocation path with random
sizes and alignments, verifying alignment and payload integrity after every
operation and leak-checking the run at the end.

Example:
  memstress alloc --ops 1000000 --max-align 256`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc()
		},
	}
}

type liveBlock struct {
	buf   []byte
	align int
	fill  byte
}

func runAlloc() error {
	if !mem.IsPowerOfTwo(allocMaxAlign) || allocMaxAlign < 8 {
		return fmt.Errorf("--max-align %d must be a power of two >= 8", allocMaxAlign)
	}

	log := logger()
	rng := rand.New(rand.NewSource(seed))
	ta := mem.NewTracking(mem.NewHeap())

	var live []liveBlock
	var allocs, reallocs, frees int

	start := time.Now()
	for op := 0; op < allocOps; op++ {
		switch {
		case len(live) == 0 || rng.Intn(3) == 0:
			size := 1 + rng.Intn(allocMaxSize)
			align := randAlign(rng, allocMaxAlign)
			b := mem.AllocAligned(ta, size, align)
			if b == nil {
				return fmt.Errorf("allocation of %d bytes failed at op %d", size, op)
			}
			fill := byte(rng.Intn(256))
			fillBytes(b, fill)
			live = append(live, liveBlock{buf: b, align: align, fill: fill})
			allocs++

		case rng.Intn(2) == 0:
			i := rng.Intn(len(live))
			blk := &live[i]
			size := 1 + rng.Intn(allocMaxSize)
			checkLen := min(len(blk.buf), size)
			nb := mem.ReallocAligned(ta, blk.buf, size, blk.align)
			if nb == nil {
				return fmt.Errorf("realloc to %d bytes failed at op %d", size, op)
			}
			if err := verifyBlock(nb, blk.align, blk.fill, checkLen); err != nil {
				return fmt.Errorf("op %d: %w", op, err)
			}
			fillBytes(nb, blk.fill)
			blk.buf = nb
			reallocs++

		default:
			i := rng.Intn(len(live))
			blk := live[i]
			if err := verifyBlock(blk.buf, blk.align, blk.fill, len(blk.buf)); err != nil {
				return fmt.Errorf("op %d: %w", op, err)
			}
			mem.FreeAligned(ta, blk.buf)
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			frees++
		}

		if verbose && op%10000 == 0 {
			log.Debug("progress", "op", op, "live", len(live), "bytes", ta.AllocatedBytes())
		}
	}

	for _, blk := range live {
		if err := verifyBlock(blk.buf, blk.align, blk.fill, len(blk.buf)); err != nil {
			return err
		}
		mem.FreeAligned(ta, blk.buf)
		frees++
	}

	if err := ta.Check(); err != nil {
		return fmt.Errorf("leak check failed: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("ok: %d allocs, %d reallocs, %d frees in %v (%.0f ops/s)\n",
		allocs, reallocs, frees, elapsed.Round(time.Millisecond),
		float64(allocOps)/elapsed.Seconds())
	return nil
}

func verifyBlock(b []byte, align int, fill byte, n int) error {
	if !mem.IsPtrAligned(unsafe.Pointer(unsafe.SliceData(b)), uintptr(align)) {
		return fmt.Errorf("block lost %d-byte alignment", align)
	}
	for i := 0; i < n; i++ {
		if b[i] != fill {
			return fmt.Errorf("payload corrupted at byte %d", i)
		}
	}
	return nil
}

func fillBytes(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

// randAlign picks a power-of-two alignment between 8 and maxAlign
// inclusive. maxAlign must be a power of two >= 8.
func randAlign(rng *rand.Rand, maxAlign int) int {
	shift := 3 + rng.Intn(bits.TrailingZeros(uint(maxAlign))-2)
	return 1 << shift
}
