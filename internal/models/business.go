package models

type BusinessAbout struct {
	Name        string    `json:"name"`
	ShortName   string    `json:"short_name"`
	Details     string    `json:"details"`
	Slogan      string    `json:"slogan"`
	Address     string    `json:"address"`
	FoundedIn   Timestamp `json:"founded_in"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Facebook    string    `json:"facebook,omitempty"`
	Twitter     string    `json:"twitter,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty"`
	Instagram   string    `json:"instagram,omitempty"`
	TikTok      string    `json:"tiktok,omitempty"`
	YouTube     string    `json:"youtube,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Wallpaper   string    `json:"wallpaper,omitempty"`
}

type Gallery struct {
	Title            string    `json:"title"`
	Details          string    `json:"details"`
	LocationName     string    `json:"location_name"`
	YoutubeVideoLink string    `json:"youtube_video_link,omitempty"`
	Picture          string    `json:"picture,omitempty"`
	Date             Timestamp `json:"date"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Document struct {
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// AppUtility is a named configuration value published by the business,
// e.g. the currency symbol.
type AppUtility struct {
	Name        UtilityName `json:"name"`
	Description string      `json:"description"`
	Value       string      `json:"value"`
}
