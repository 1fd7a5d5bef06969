package templates

import (
	"encoding/json"

	"github.com/oksasatya/growth-partner/config"
)

// Option pattern
type Option func(*BaseData)

func WithSupportURL(url string) Option     { return func(d *BaseData) { d.SupportURL = url } }
func WithUnsubscribeURL(url string) Option { return func(d *BaseData) { d.UnsubscribeURL = url } }

// BaseData holds the fields shared by every notification template.
type BaseData struct {
	AppName        string `json:"AppName"`
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	LogoURL        string `json:"LogoURL"`
	SupportURL     string `json:"SupportURL"`
	UnsubscribeURL string `json:"UnsubscribeURL"`
}

// NewBaseData fills the shared fields from config, then applies opts.
func NewBaseData(cfg *config.Config, opts ...Option) BaseData {
	d := BaseData{
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// ToMap converts BaseData to a map[string]any for NotificationJob.Data
func ToMap(d BaseData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
