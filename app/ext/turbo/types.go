package turbo

const (
	Prefix    = "turbo"
	Namespace = "http://turbo.yandex.ru"

	NetworkAdFox  = "AdFox"
	NetworkYandex = "Yandex"
)

// Analytics is a counter attached to Turbo pages
// https://yandex.ru/dev/turbo/doc/settings/analytics-docpage/
type Analytics struct {
	Type   string
	ID     string
	Params string
}

// Network is an advertising network block for Turbo pages
type Network struct {
	Type      string
	TurboAdID string
	Content   string
}
