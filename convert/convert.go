package convert

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/notargets/golagrange/lagrange"
	"github.com/notargets/golagrange/mesh"
	"github.com/notargets/golagrange/utils"
)

// ElementSource is the input side of a conversion: a mesh that can hand out
// its spectral elements one at a time, each with grid ordered points
type ElementSource interface {
	NumElements() (int, error)
	CellType() utils.ElementType // Type of the first cell
	Element(id int) (*mesh.Element, error)
}

// CellSink is the output side of a conversion: a mesh assembled from high
// order Lagrange cells whose points arrive in Lagrange order
type CellSink interface {
	AddLagrangeCell(ct utils.ElementType, points [][3]float64, pointData, cellData []mesh.Field) error
}

type Options struct {
	// Number of goroutines converting elements, values below 2 run serially
	ParallelDegree int
	// Permutations are reused from here when set, otherwise a cache is
	// created for the call
	Cache *lagrange.Cache
	// Progress and summary logging, nil discards
	Logger *log.Logger
}

type Stats struct {
	NumElements int
	NumPoints   int
	CellType    utils.ElementType
	Orders      []int // Distinct element orders, ascending
	Elapsed     time.Duration
}

type converted struct {
	points    [][3]float64
	pointData []mesh.Field
	cellData  []mesh.Field
	order     int
	err       error
}

/*
ToLagrange converts every element of src into a Lagrange cell of sink.

The first cell's type decides the conversion: Hex elements become Lagrange
hexahedra and Quad elements Lagrange quadrilaterals. Each element's order is
inferred from its point count, its points and point fields are reordered with
the permutation for that order, and its cell fields are passed through.

Elements are converted concurrently when opts.ParallelDegree > 1 but reach the
sink in element id order, so the output does not depend on the parallelism.
The error of the lowest numbered failing element is returned, and when any
element fails no cell is handed to the sink.
*/
func ToLagrange(src ElementSource, sink CellSink, opts Options) (stats *Stats, err error) {
	var (
		start  = time.Now()
		logger = opts.Logger
		cache  = opts.Cache
		nElem  int
	)
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cache == nil {
		cache = lagrange.NewCache()
	}
	var (
		cellType = src.CellType()
		target   = cellType.Lagrange()
		dim      = cellType.GetDimension()
	)
	if target == utils.Unknown || cellType.IsLagrange() {
		return nil, &lagrange.UnsupportedCellTypeError{Element: 0, Got: cellType}
	}
	if nElem, err = src.NumElements(); err != nil {
		return nil, err
	}
	if dim == 3 {
		logger.Info("Converting hexahedral data", "elements", nElem)
	} else {
		logger.Info("Converting quadrilateral data", "elements", nElem)
	}

	results := make([]converted, nElem)
	pm := utils.NewPartitionMap(opts.ParallelDegree, nElem)
	logger.Debug("Partitioned elements", "goroutines", pm.ParallelDegree, "perGoroutine", pm.GetBucketDimension(0))
	var wg sync.WaitGroup
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		wg.Add(1)
		go func(kMin, kMax int) {
			defer wg.Done()
			for k := kMin; k < kMax; k++ {
				results[k] = convertElement(src, cache, k, dim, cellType)
				if results[k].err != nil {
					return
				}
			}
		}(kMin, kMax)
	}
	wg.Wait()

	// Nothing reaches the sink unless every element converted
	for k := range results {
		if results[k].err != nil {
			return nil, results[k].err
		}
	}

	stats = &Stats{CellType: target}
	seen := make(map[int]bool)
	for k := range results {
		r := &results[k]
		if err = sink.AddLagrangeCell(target, r.points, r.pointData, r.cellData); err != nil {
			return nil, fmt.Errorf("element %d: %w", k, err)
		}
		stats.NumElements++
		stats.NumPoints += len(r.points)
		if !seen[r.order] {
			seen[r.order] = true
			stats.Orders = insertSorted(stats.Orders, r.order)
		}
		results[k] = converted{}
	}
	stats.Elapsed = time.Since(start)
	logger.Debug("permutation cache", "entries", cache.Len())
	logger.Info("Converted", "elements", stats.NumElements, "points", stats.NumPoints,
		"orders", stats.Orders, "elapsed", stats.Elapsed.Round(time.Millisecond))
	return
}

func convertElement(src ElementSource, cache *lagrange.Cache, id, dim int,
	cellType utils.ElementType) (r converted) {
	var (
		el   *mesh.Element
		perm *lagrange.Permutation
	)
	if el, r.err = src.Element(id); r.err != nil {
		r.err = fmt.Errorf("element %d: %w", id, r.err)
		return
	}
	if el.CellType != cellType {
		r.err = &lagrange.UnsupportedCellTypeError{Element: id, Got: el.CellType, Want: cellType}
		return
	}
	if r.order, r.err = lagrange.InferOrder(dim, el.NumPoints()); r.err != nil {
		var iee *lagrange.InvalidElementError
		if errors.As(r.err, &iee) {
			iee.Element = id
		}
		return
	}
	if perm, r.err = cache.Get(dim, r.order); r.err != nil {
		return
	}
	if r.points, r.err = perm.ApplyPoints(el.Points); r.err != nil {
		r.err = fmt.Errorf("element %d: %w", id, r.err)
		return
	}
	r.pointData = make([]mesh.Field, len(el.PointData))
	for i, f := range el.PointData {
		var data []float64
		if data, r.err = perm.ApplyField(f.Data, f.NumComponents); r.err != nil {
			r.err = fmt.Errorf("element %d, point field %q: %w", id, f.Name, r.err)
			return
		}
		r.pointData[i] = mesh.Field{Name: f.Name, NumComponents: f.NumComponents, Data: data}
	}
	r.cellData = el.CellData
	return
}

func insertSorted(vals []int, v int) []int {
	i := len(vals)
	for i > 0 && vals[i-1] > v {
		i--
	}
	vals = append(vals, 0)
	copy(vals[i+1:], vals[i:])
	vals[i] = v
	return vals
}
