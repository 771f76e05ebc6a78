package domain

// AdPlatform identifica a plataforma de anúncios de um formulário de conexão
type AdPlatform string

const (
	AdPlatformGoogleAds AdPlatform = "google-ads"
	AdPlatformMetaAds   AdPlatform = "meta-ads"
)

// ConnectionRequest é o formulário de conexão com uma plataforma de anúncios
type ConnectionRequest struct {
	ClientID    string `json:"client_id"`
	AccessToken string `json:"access_token"`
}

// ConnectionResponse é a resposta do formulário de conexão
type ConnectionResponse struct {
	Platform  AdPlatform `json:"platform"`
	Reference string     `json:"reference"`
	Connected bool       `json:"connected"`
	Message   string     `json:"message"`
}
