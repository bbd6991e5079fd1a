package partitions

import (
	"fmt"
	"math"
)

// PartitionBuilder constructs partitions over a set of evaluation points
type PartitionBuilder struct {
	NumElements int // Number of points to distribute

	// Partitioning parameters; NumPartitions wins over TargetPartitionSize
	NumPartitions       int
	TargetPartitionSize int
	Strategy            PartitionStrategy
}

// PartitionStrategy defines how points are grouped
type PartitionStrategy int

const (
	BlockPartition PartitionStrategy = iota // Consecutive points
	RoundRobin                              // Distribute cyclically
)

// BuildPartitions creates a partition layout
func (pb *PartitionBuilder) BuildPartitions() (*PartitionLayout, error) {
	if pb.NumElements < 1 {
		return nil, fmt.Errorf("invalid point count %d", pb.NumElements)
	}
	numPartitions, err := pb.calculateNumPartitions()
	if err != nil {
		return nil, err
	}

	eToP, err := pb.partitionElements(numPartitions)
	if err != nil {
		return nil, err
	}
	partitions, eToL := pb.createPartitions(eToP, numPartitions)

	layout := &PartitionLayout{
		Partitions:    partitions,
		KpartMax:      calculateKpartMax(partitions),
		TotalElements: pb.NumElements,
		NumPartitions: numPartitions,
		EToP:          eToP,
		EToL:          eToL,
	}

	if err := layout.ValidateLayout(); err != nil {
		return nil, fmt.Errorf("invalid partition layout: %w", err)
	}
	return layout, nil
}

// calculateNumPartitions never returns more partitions than points, so no
// partition is empty
func (pb *PartitionBuilder) calculateNumPartitions() (int, error) {
	var numPartitions int
	switch {
	case pb.NumPartitions > 0:
		numPartitions = pb.NumPartitions
	case pb.TargetPartitionSize > 0:
		numPartitions = int(math.Ceil(float64(pb.NumElements) / float64(pb.TargetPartitionSize)))
	case pb.NumPartitions < 0 || pb.TargetPartitionSize < 0:
		return 0, fmt.Errorf("invalid partition parameters: NumPartitions=%d, TargetPartitionSize=%d",
			pb.NumPartitions, pb.TargetPartitionSize)
	default:
		numPartitions = 1
	}
	if numPartitions > pb.NumElements {
		numPartitions = pb.NumElements
	}
	return numPartitions, nil
}

func (pb *PartitionBuilder) partitionElements(numPartitions int) ([]int, error) {
	eToP := make([]int, pb.NumElements)

	switch pb.Strategy {
	case BlockPartition:
		// remainder spread over the first partitions
		base, extra := pb.NumElements/numPartitions, pb.NumElements%numPartitions
		k := 0
		for p := 0; p < numPartitions; p++ {
			size := base
			if p < extra {
				size++
			}
			for i := 0; i < size; i++ {
				eToP[k] = p
				k++
			}
		}
	case RoundRobin:
		for i := 0; i < pb.NumElements; i++ {
			eToP[i] = i % numPartitions
		}
	default:
		return nil, fmt.Errorf("unknown partition strategy %d", pb.Strategy)
	}
	return eToP, nil
}

func (pb *PartitionBuilder) createPartitions(eToP []int, numPartitions int) ([]Partition, []int) {
	partitions := make([]Partition, numPartitions)
	for i := range partitions {
		partitions[i] = Partition{ID: i}
	}

	eToL := make([]int, len(eToP))
	for elem, part := range eToP {
		eToL[elem] = partitions[part].NumElements
		partitions[part].Elements = append(partitions[part].Elements, elem)
		partitions[part].NumElements++
	}
	return partitions, eToL
}

func calculateKpartMax(partitions []Partition) int {
	kpartMax := 0
	for _, p := range partitions {
		if p.NumElements > kpartMax {
			kpartMax = p.NumElements
		}
	}
	return kpartMax
}

// AllocatePartitionedArray creates storage for stride values per point
func AllocatePartitionedArray(layout *PartitionLayout, stride int) *PartitionedArray {
	if stride < 1 {
		panic(fmt.Sprintf("AllocatePartitionedArray: stride %d, must be positive", stride))
	}
	offsets := make([]int, layout.NumPartitions+1)
	for i, p := range layout.Partitions {
		offsets[i+1] = offsets[i] + p.NumElements*stride
	}
	totalSize := offsets[layout.NumPartitions]

	return &PartitionedArray{
		GlobalData:    make([]float64, totalSize),
		Offsets:       offsets,
		Stride:        stride,
		AllocatedSize: totalSize,
	}
}

// PartitionStatistics computes load balance metrics
func (layout *PartitionLayout) PartitionStatistics() PartitionStats {
	stats := PartitionStats{
		NumPartitions: layout.NumPartitions,
		MinElements:   math.MaxInt32,
		MaxElements:   0,
		AvgElements:   float64(layout.TotalElements) / float64(layout.NumPartitions),
	}

	for _, p := range layout.Partitions {
		if p.NumElements < stats.MinElements {
			stats.MinElements = p.NumElements
		}
		if p.NumElements > stats.MaxElements {
			stats.MaxElements = p.NumElements
		}
	}

	stats.Imbalance = float64(stats.MaxElements) / stats.AvgElements

	return stats
}

type PartitionStats struct {
	NumPartitions int
	MinElements   int
	MaxElements   int
	AvgElements   float64
	Imbalance     float64 // MaxElements / AvgElements
}
