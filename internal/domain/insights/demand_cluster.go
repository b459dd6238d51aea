package insights

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// DefaultClusterSeed semilla fija del agrupamiento: la misma entrada produce siempre los mismos clusters.
const DefaultClusterSeed int64 = 42

const (
	maxDemandClusters = 3
	kmeansRestarts    = 10
	kmeansMaxIter     = 300
)

// ClusterDemand agrupa los productos por total de ventas (k-means unidimensional con
// k = min(3, n)). Sin estadísticas no hay clusters; con un único producto se asigna el cluster 0.
// Los ids de cluster son opacos: 0 no significa "menor demanda".
func ClusterDemand(stats []SalesStat, seed int64) []DemandCluster {
	if len(stats) == 0 {
		return []DemandCluster{}
	}

	values := make([]float64, len(stats))
	for i, s := range stats {
		values[i] = float64(s.TotalSales)
	}

	labels := make([]int, len(values))
	if len(values) > 1 {
		labels = kmeans1D(values, min(maxDemandClusters, len(values)), seed)
	}

	clusters := make([]DemandCluster, 0, len(stats))
	for i, s := range stats {
		clusters = append(clusters, DemandCluster{
			ProductID:  s.ProductID,
			TotalSales: values[i],
			Cluster:    labels[i],
		})
	}
	return clusters
}

// kmeans1D ejecuta varios reinicios sembrados con k-means++ y conserva el de menor inercia.
func kmeans1D(values []float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))

	var best []int
	bestInertia := math.Inf(1)
	for r := 0; r < kmeansRestarts; r++ {
		centers := seedCenters(values, k, rng)
		labels, inertia := lloyd(values, centers)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}
	return best
}

// seedCenters inicialización k-means++: cada nuevo centro se elige con probabilidad
// proporcional a la distancia al cuadrado al centro más cercano.
func seedCenters(values []float64, k int, rng *rand.Rand) []float64 {
	centers := make([]float64, 0, k)
	centers = append(centers, values[rng.Intn(len(values))])

	d2 := make([]float64, len(values))
	for len(centers) < k {
		var sum float64
		for i, v := range values {
			d2[i] = nearestDistance(v, centers)
			sum += d2[i]
		}
		if sum == 0 {
			// Todos los puntos coinciden con un centro: no hay más grupos distintos.
			centers = append(centers, values[rng.Intn(len(values))])
			continue
		}

		target := rng.Float64() * sum
		pick := -1
		var cum float64
		for i := range values {
			if d2[i] == 0 {
				continue
			}
			cum += d2[i]
			pick = i
			if cum >= target {
				break
			}
		}
		centers = append(centers, values[pick])
	}
	return centers
}

// lloyd itera asignación/actualización hasta que las etiquetas no cambian.
// Un cluster vacío conserva su centro anterior.
func lloyd(values, centers []float64) ([]int, float64) {
	labels := assign(values, centers)
	for iter := 0; iter < kmeansMaxIter; iter++ {
		members := make([][]float64, len(centers))
		for i, v := range values {
			members[labels[i]] = append(members[labels[i]], v)
		}
		for c := range centers {
			if len(members[c]) > 0 {
				centers[c] = stat.Mean(members[c], nil)
			}
		}

		next := assign(values, centers)
		changed := false
		for i := range next {
			if next[i] != labels[i] {
				changed = true
				break
			}
		}
		labels = next
		if !changed {
			break
		}
	}

	var inertia float64
	for i, v := range values {
		d := v - centers[labels[i]]
		inertia += d * d
	}
	return labels, inertia
}

// assign asigna cada valor al centro más cercano; ante empate, el de menor índice.
func assign(values, centers []float64) []int {
	labels := make([]int, len(values))
	for i, v := range values {
		bestDist := math.Inf(1)
		for c, center := range centers {
			d := (v - center) * (v - center)
			if d < bestDist {
				bestDist = d
				labels[i] = c
			}
		}
	}
	return labels
}

func nearestDistance(v float64, centers []float64) float64 {
	best := math.Inf(1)
	for _, c := range centers {
		if d := (v - c) * (v - c); d < best {
			best = d
		}
	}
	return best
}
