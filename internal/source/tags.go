package source

import "strings"

// keywordTag maps a lowercase signal word found in title+description to the
// case-preserved tag it produces. Ordered so tag extraction is deterministic.
type keywordTag struct {
	keyword string
	tag     string
}

var keywordTags = []keywordTag{
	{"remote", "Remote"},
	{"work from home", "Remote"},
	{"intern", "Internship"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue"},
	{"javascript", "JavaScript"},
	{"typescript", "TypeScript"},
	{"node", "Node.js"},
	{"python", "Python"},
	{"django", "Django"},
	{"golang", "Go"},
	{"java ", "Java"},
	{"rust", "Rust"},
	{"frontend", "Frontend"},
	{"backend", "Backend"},
	{"full stack", "Full Stack"},
	{"fullstack", "Full Stack"},
	{"machine learning", "Machine Learning"},
	{"deep learning", "Machine Learning"},
	{"data science", "Data Science"},
	{"data analy", "Data Science"},
	{"artificial intelligence", "AI"},
	{"ai/ml", "AI"},
	{"security", "Security"},
	{"blockchain", "Blockchain"},
	{"web3", "Web3"},
	{"cloud", "Cloud"},
	{"aws", "AWS"},
	{"kubernetes", "Kubernetes"},
	{"docker", "Docker"},
	{"design", "Design"},
	{"figma", "Design"},
	{"ui/ux", "Design"},
	{"devops", "DevOps"},
	{"mobile", "Mobile"},
	{"android", "Android"},
	{"ios", "iOS"},
}

// ExtractTags derives a tag set from the listing's title and description by
// keyword matching. The result preserves mapping case and contains no
// duplicates; it may be empty, in which case normalization assigns the
// category fallback tag.
func ExtractTags(title, description string) []string {
	text := strings.ToLower(title + " " + description)

	seen := make(map[string]bool)
	var tags []string
	for _, kt := range keywordTags {
		if !strings.Contains(text, kt.keyword) {
			continue
		}
		if seen[kt.tag] {
			continue
		}
		seen[kt.tag] = true
		tags = append(tags, kt.tag)
	}
	return tags
}
