package chrpos

import "fmt"

// ChunkLocus splits a bounded locus into consecutive windows of chunksize base
// pairs. The final window is truncated at the locus end.
func ChunkLocus(locus Locus, chunksize int) ([]Locus, error) {
	if chunksize < 1 {
		return nil, fmt.Errorf("ChunkLocus: chunk size must be positive, got %d", chunksize)
	}
	if !locus.HasChrom() || locus.End == 0 {
		return nil, fmt.Errorf("ChunkLocus: %s is not a bounded region", locus)
	}

	start := locus.Start
	if start < 1 {
		start = 1
	}

	output := make([]Locus, 0, (locus.End-start)/chunksize+1)
	for locationInChromosome := start; locationInChromosome <= locus.End; locationInChromosome += chunksize {

		endPoint := locationInChromosome + chunksize - 1
		if endPoint > locus.End {
			endPoint = locus.End
		}

		output = append(output, Locus{
			Chrom: locus.Chrom,
			Start: locationInChromosome,
			End:   endPoint,
		})
	}

	return output, nil
}
