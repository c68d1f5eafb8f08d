// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// KMeansExtractor implements colour extraction using k-means clustering in RGB space.
// Every call owns its samples, assignments and random generator, so a single
// extractor may be shared between goroutines.
type KMeansExtractor struct {
	config Config
	logger hclog.Logger
}

// ClusterResult holds the outcome of a k-means run.
type ClusterResult struct {
	// Centroids are the cluster means in initialisation order.
	Centroids []Sample
	// Counts holds the number of samples assigned to each centroid.
	Counts []int
	// Inertia is the sum of squared distances from each sample to its centroid.
	Inertia float64
	// Iterations is the number of assignment passes of the winning run.
	Iterations int
}

// NewKMeansExtractor creates a KMeansExtractor. A nil logger discards output.
func NewKMeansExtractor(config Config, logger hclog.Logger) *KMeansExtractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KMeansExtractor{
		config: config,
		logger: logger.Named("kmeans"),
	}
}

// Cluster partitions samples into k clusters using the default iteration
// settings and returns the k centroids in cluster-index order.
func Cluster(samples []Sample, k int, seed int64) ([]Sample, error) {
	config := DefaultConfig()
	config.ClusterCount = k
	config.Seed = seed

	result, err := NewKMeansExtractor(config, nil).Cluster(samples)
	if err != nil {
		return nil, err
	}
	return result.Centroids, nil
}

// Extract preprocesses img, clusters its pixels and returns the centroids as a
// palette. Colours keep cluster-index order and carry their relative cluster sizes.
func (e *KMeansExtractor) Extract(img image.Image) (*Palette, error) {
	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	resized, err := Preprocess(img, e.config.TargetWidth)
	if err != nil {
		return nil, err
	}

	samples := Samples(resized)
	e.logger.Debug("sampled image", "width", resized.Bounds().Dx(), "height", resized.Bounds().Dy(), "samples", len(samples))

	result, err := e.Cluster(samples)
	if err != nil {
		return nil, err
	}

	colours := make([]RGB, len(result.Centroids))
	weights := make([]float64, len(result.Centroids))
	for i, c := range result.Centroids {
		colours[i] = RGBFromSample(c)
		weights[i] = float64(result.Counts[i]) / float64(len(samples))
	}

	return NewPaletteWithWeights(colours, weights), nil
}

// Cluster runs k-means over samples. When more than one run is configured, each
// run draws its initial centroids from the same seeded generator and the run
// with the lowest inertia is kept; ties keep the earlier run.
func (e *KMeansExtractor) Cluster(samples []Sample) (*ClusterResult, error) {
	k := e.config.ClusterCount
	if k < 1 {
		return nil, fmt.Errorf("%w: cluster count must be at least 1, got %d", ErrInvalidParameter, k)
	}
	if k > len(samples) {
		return nil, fmt.Errorf("%w: %d clusters requested from %d samples", ErrInsufficientSamples, k, len(samples))
	}

	rng := rand.New(rand.NewSource(e.config.Seed)) // #nosec G404 -- reproducible clustering, not security sensitive

	var best *ClusterResult
	for run := range max(e.config.Runs, 1) {
		result := e.run(samples, k, rng)
		e.logger.Debug("k-means run finished", "run", run, "iterations", result.Iterations, "inertia", result.Inertia)
		if best == nil || result.Inertia < best.Inertia {
			best = result
		}
	}

	return best, nil
}

// run performs a single k-means++ initialisation followed by Lloyd iterations.
func (e *KMeansExtractor) run(samples []Sample, k int, rng *rand.Rand) *ClusterResult {
	centroids := initialiseCentroids(samples, k, rng)

	assignments := make([]int, len(samples))
	for i := range assignments {
		assignments[i] = -1
	}

	maxIterations := max(e.config.MaxIterations, 1)
	iterations := 0
	for iterations < maxIterations {
		iterations++

		changed := e.assign(samples, centroids, assignments)
		e.logger.Trace("assignment pass", "iteration", iterations, "changed", changed)
		if changed == 0 {
			break
		}

		shift := updateCentroids(samples, assignments, centroids)
		if shift < e.config.Tolerance {
			break
		}
	}

	counts := make([]int, k)
	inertia := 0.0
	for i, s := range samples {
		counts[assignments[i]]++
		inertia += s.sqDistance(centroids[assignments[i]])
	}

	return &ClusterResult{
		Centroids:  centroids,
		Counts:     counts,
		Inertia:    inertia,
		Iterations: iterations,
	}
}

// initialiseCentroids picks k starting centroids with k-means++. Each new
// centroid is drawn with probability proportional to its squared distance from
// the nearest chosen centroid. If every sample already coincides with a chosen
// centroid, a sample is drawn uniformly instead, which may duplicate a centroid.
func initialiseCentroids(samples []Sample, k int, rng *rand.Rand) []Sample {
	centroids := make([]Sample, 0, k)
	centroids = append(centroids, samples[rng.Intn(len(samples))])

	distances := make([]float64, len(samples))
	for i, s := range samples {
		distances[i] = s.sqDistance(centroids[0])
	}

	for len(centroids) < k {
		total := 0.0
		for _, d := range distances {
			total += d
		}

		var next int
		if total <= 0 {
			next = rng.Intn(len(samples))
		} else {
			target := rng.Float64() * total
			cumulative := 0.0
			next = -1
			last := 0
			for i, d := range distances {
				if d <= 0 {
					continue
				}
				last = i
				cumulative += d
				if cumulative > target {
					next = i
					break
				}
			}
			if next < 0 {
				// Rounding left the target just past the final weight.
				next = last
			}
		}

		centroid := samples[next]
		centroids = append(centroids, centroid)
		for i, s := range samples {
			if d := s.sqDistance(centroid); d < distances[i] {
				distances[i] = d
			}
		}
	}

	return centroids
}

// assign moves every sample to its nearest centroid and returns how many
// assignments changed. With more than one worker the samples are split into
// contiguous ranges; the call returns only after every range is done.
func (e *KMeansExtractor) assign(samples, centroids []Sample, assignments []int) int {
	workers := e.config.Workers
	if workers <= 1 || len(samples) < workers {
		return assignRange(samples, centroids, assignments)
	}

	chunk := (len(samples) + workers - 1) / workers
	changed := make([]int, workers)

	var wg sync.WaitGroup
	for w := range workers {
		start := w * chunk
		if start >= len(samples) {
			break
		}
		end := min(start+chunk, len(samples))

		wg.Add(1)
		go func() {
			defer wg.Done()
			changed[w] = assignRange(samples[start:end], centroids, assignments[start:end])
		}()
	}
	wg.Wait()

	total := 0
	for _, c := range changed {
		total += c
	}
	return total
}

// assignRange assigns each sample to its nearest centroid.
func assignRange(samples, centroids []Sample, assignments []int) int {
	changed := 0
	for i, s := range samples {
		nearest := nearestCentroid(s, centroids)
		if assignments[i] != nearest {
			assignments[i] = nearest
			changed++
		}
	}
	return changed
}

// nearestCentroid returns the index of the closest centroid. Ties go to the lowest index.
func nearestCentroid(s Sample, centroids []Sample) int {
	nearest := 0
	minDist := math.Inf(1)
	for i, c := range centroids {
		if d := s.sqDistance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// updateCentroids replaces each centroid with the mean of its assigned samples
// and returns the largest distance any centroid moved. A centroid with no
// samples keeps its previous position.
func updateCentroids(samples []Sample, assignments []int, centroids []Sample) float64 {
	sums := make([]Sample, len(centroids))
	counts := make([]int, len(centroids))
	for i, s := range samples {
		c := assignments[i]
		sums[c][0] += s[0]
		sums[c][1] += s[1]
		sums[c][2] += s[2]
		counts[c]++
	}

	maxShift := 0.0
	for i := range centroids {
		if counts[i] == 0 {
			continue
		}
		n := float64(counts[i])
		mean := Sample{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
		maxShift = max(maxShift, math.Sqrt(mean.sqDistance(centroids[i])))
		centroids[i] = mean
	}
	return maxShift
}
