package domain

// SEOPage holds the meta tags the dashboard manages per storefront page.
type SEOPage struct {
	PageName    string `json:"pageName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
	OGImage     string `json:"ogImage,omitempty"`
}
