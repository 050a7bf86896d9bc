package models

// SiteSettings carries the layout data shared by header and footer.
type SiteSettings struct {
	SiteName string          `json:"site_name"`
	LogoURL  string          `json:"logo_url"`
	WhatsApp WhatsAppContact `json:"whatsapp"`
}

// WhatsAppContact is the floating "chat with us" button target.
type WhatsAppContact struct {
	Number  string `json:"number"`
	Message string `json:"message,omitempty"`
}
