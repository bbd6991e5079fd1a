package partitions

import (
	"fmt"
)

// Partition is a group of evaluation points processed together by one
// worker. A point is typically one integration point of one element.
type Partition struct {
	// Unique identifier for this partition
	ID int

	// Point membership
	Elements    []int // Global point indices in this partition, ascending
	NumElements int   // Number of points in this partition
}

// PartitionLayout manages the decomposition of K points into partitions
type PartitionLayout struct {
	// All partitions
	Partitions []Partition

	// Global sizing information
	KpartMax      int // max(NumElements) across all partitions
	TotalElements int // Sum of all points across partitions
	NumPartitions int

	// Point to partition mapping
	EToP []int // Length TotalElements: point k belongs to partition EToP[k]
	EToL []int // Length TotalElements: position of point k inside its partition
}

// PartitionedArray stores a fixed number of values per point, contiguous
// per partition
type PartitionedArray struct {
	// Layout: [Partition 0 Data][Partition 1 Data]...[Partition N-1 Data]
	GlobalData []float64

	// Partition p's data is GlobalData[Offsets[p]:Offsets[p+1]]
	Offsets []int

	// Number of values per point
	Stride int

	AllocatedSize int
}

// GetPartition returns the partition containing point k, or -1
func (pl *PartitionLayout) GetPartition(elementID int) int {
	if elementID < 0 || elementID >= len(pl.EToP) {
		return -1
	}
	return pl.EToP[elementID]
}

// ValidateLayout checks partition consistency
func (pl *PartitionLayout) ValidateLayout() error {
	if pl.NumPartitions != len(pl.Partitions) {
		return fmt.Errorf("NumPartitions %d != %d partitions", pl.NumPartitions, len(pl.Partitions))
	}
	if len(pl.EToP) != pl.TotalElements || len(pl.EToL) != pl.TotalElements {
		return fmt.Errorf("EToP/EToL lengths %d/%d != TotalElements %d",
			len(pl.EToP), len(pl.EToL), pl.TotalElements)
	}

	actualMax, total := 0, 0
	for _, p := range pl.Partitions {
		if p.NumElements != len(p.Elements) {
			return fmt.Errorf("partition %d: NumElements %d != %d elements",
				p.ID, p.NumElements, len(p.Elements))
		}
		for local, k := range p.Elements {
			if k < 0 || k >= pl.TotalElements {
				return fmt.Errorf("partition %d: point %d out of range", p.ID, k)
			}
			if pl.EToP[k] != p.ID || pl.EToL[k] != local {
				return fmt.Errorf("partition %d: point %d maps to partition %d slot %d",
					p.ID, k, pl.EToP[k], pl.EToL[k])
			}
		}
		if p.NumElements > actualMax {
			actualMax = p.NumElements
		}
		total += p.NumElements
	}
	if actualMax != pl.KpartMax {
		return fmt.Errorf("computed KpartMax %d != stored KpartMax %d",
			actualMax, pl.KpartMax)
	}
	if total != pl.TotalElements {
		return fmt.Errorf("partitions hold %d points, want %d", total, pl.TotalElements)
	}
	return nil
}

// GetPartitionData returns a slice for partition p's data
func (pa *PartitionedArray) GetPartitionData(partitionID int) []float64 {
	if partitionID < 0 || partitionID >= len(pa.Offsets)-1 {
		return nil
	}
	start := pa.Offsets[partitionID]
	end := pa.Offsets[partitionID+1]
	return pa.GlobalData[start:end]
}

// GetElementData returns the Stride values stored for point k
func (pa *PartitionedArray) GetElementData(layout *PartitionLayout, elementID int) []float64 {
	p := layout.GetPartition(elementID)
	if p < 0 {
		return nil
	}
	start := pa.Offsets[p] + layout.EToL[elementID]*pa.Stride
	return pa.GlobalData[start : start+pa.Stride]
}
