package similarity

// Cluster is a group of similar texts keyed by its first-seen member.
type Cluster struct {
	Representative string
	Members        []string
}

// Group clusters texts using a precomputed similarity matrix. Each text not
// yet assigned, in input order, collects every unassigned text whose
// similarity exceeds threshold. A text always joins its own cluster, so one
// that matches nothing else becomes a singleton.
func Group(texts []string, m [][]float64, threshold float64) []Cluster {
	if len(texts) == 0 {
		return nil
	}
	assigned := make([]bool, len(texts))
	var clusters []Cluster
	for i, text := range texts {
		if assigned[i] {
			continue
		}
		c := Cluster{Representative: text}
		for j := range texts {
			if assigned[j] || !similar(m, i, j, threshold) {
				continue
			}
			c.Members = append(c.Members, texts[j])
			assigned[j] = true
		}
		clusters = append(clusters, c)
	}
	return clusters
}

func similar(m [][]float64, i, j int, threshold float64) bool {
	if i == j {
		return true
	}
	if i >= len(m) || j >= len(m[i]) {
		return false
	}
	return m[i][j] > threshold
}

// ClusterTexts scores texts and groups them at the given threshold.
func ClusterTexts(texts []string, threshold float64) []Cluster {
	return Group(texts, Matrix(texts), threshold)
}

// Frequency maps each cluster representative to its member count. When two
// clusters share a representative text, the later one wins.
func Frequency(clusters []Cluster) map[string]int {
	freq := make(map[string]int, len(clusters))
	for _, c := range clusters {
		freq[c.Representative] = len(c.Members)
	}
	return freq
}

// ClusterAndScore returns the similarity matrix of texts together with the
// cluster frequency map at DefaultThreshold.
func ClusterAndScore(texts []string) ([][]float64, map[string]int) {
	m := Matrix(texts)
	return m, Frequency(Group(texts, m, DefaultThreshold))
}
