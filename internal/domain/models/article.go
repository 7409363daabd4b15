package models

// ArticleDateLayout matches the timestamps already present in news.json.
const ArticleDateLayout = "2006-01-02T15:04:05.000000"

const DefaultArticleAuthor = "SCCF Team"

type Article struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Author   string   `json:"author"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Image    string   `json:"image"`
	Images   []string `json:"images"`
	Date     string   `json:"date"`
}

// Files returns every upload referenced by the article, main image first.
func (a Article) Files() []string {
	files := make([]string, 0, len(a.Images)+1)
	if a.Image != "" {
		files = append(files, a.Image)
	}

	return append(files, a.Images...)
}
