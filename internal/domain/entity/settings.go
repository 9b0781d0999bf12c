package entity

// PredefinedService is a menu entry used to auto-fill a service line
// when its name matches. Names act as lookup keys and are not enforced
// unique.
type PredefinedService struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// SalonSettings is the per-device singleton configuration. It is
// created with defaults on first load and only ever updated in place.
type SalonSettings struct {
	SalonName          string              `json:"salonName"`
	Address            string              `json:"address"`
	OwnerName          string              `json:"ownerName"`
	OwnerWhatsApp      string              `json:"ownerWhatsApp"`
	TaxRate            float64             `json:"taxRate"`
	EnableTax          bool                `json:"enableTax"`
	CurrencySymbol     string              `json:"currencySymbol"`
	PredefinedServices []PredefinedService `json:"predefinedServices"`
	GSTNumber          string              `json:"gstNumber"`
	GoogleReviewLink   string              `json:"googleReviewLink"`
	InstagramLink      string              `json:"instagramLink"`
	SettingsPassword   string              `json:"settingsPassword"` // SHA-256 hex digest; empty = no protection
	GlobalOfferImage   string              `json:"globalOfferImageBase64,omitempty"`
}

// DefaultSettings returns the settings a fresh device starts with.
func DefaultSettings() SalonSettings {
	return SalonSettings{
		SalonName:          "My Salon",
		Address:            "123 Beauty Street, City",
		OwnerName:          "Owner",
		OwnerWhatsApp:      "",
		TaxRate:            0,
		EnableTax:          false,
		CurrencySymbol:     "₹",
		PredefinedServices: []PredefinedService{},
	}
}

// SettingsPatch carries a partial settings update. Nil fields are left
// untouched by the merge, matching the shallow-merge contract of the
// settings store.
type SettingsPatch struct {
	SalonName          *string              `json:"salonName,omitempty"`
	Address            *string              `json:"address,omitempty"`
	OwnerName          *string              `json:"ownerName,omitempty"`
	OwnerWhatsApp      *string              `json:"ownerWhatsApp,omitempty"`
	TaxRate            *float64             `json:"taxRate,omitempty"`
	EnableTax          *bool                `json:"enableTax,omitempty"`
	CurrencySymbol     *string              `json:"currencySymbol,omitempty"`
	PredefinedServices *[]PredefinedService `json:"predefinedServices,omitempty"`
	GSTNumber          *string              `json:"gstNumber,omitempty"`
	GoogleReviewLink   *string              `json:"googleReviewLink,omitempty"`
	InstagramLink      *string              `json:"instagramLink,omitempty"`
	SettingsPassword   *string              `json:"settingsPassword,omitempty"`
	GlobalOfferImage   *string              `json:"globalOfferImageBase64,omitempty"`
}

// Apply merges the patch onto s and returns the result.
func (p SettingsPatch) Apply(s SalonSettings) SalonSettings {
	if p.SalonName != nil {
		s.SalonName = *p.SalonName
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.OwnerName != nil {
		s.OwnerName = *p.OwnerName
	}
	if p.OwnerWhatsApp != nil {
		s.OwnerWhatsApp = *p.OwnerWhatsApp
	}
	if p.TaxRate != nil {
		s.TaxRate = *p.TaxRate
	}
	if p.EnableTax != nil {
		s.EnableTax = *p.EnableTax
	}
	if p.CurrencySymbol != nil {
		s.CurrencySymbol = *p.CurrencySymbol
	}
	if p.PredefinedServices != nil {
		s.PredefinedServices = *p.PredefinedServices
	}
	if p.GSTNumber != nil {
		s.GSTNumber = *p.GSTNumber
	}
	if p.GoogleReviewLink != nil {
		s.GoogleReviewLink = *p.GoogleReviewLink
	}
	if p.InstagramLink != nil {
		s.InstagramLink = *p.InstagramLink
	}
	if p.SettingsPassword != nil {
		s.SettingsPassword = *p.SettingsPassword
	}
	if p.GlobalOfferImage != nil {
		s.GlobalOfferImage = *p.GlobalOfferImage
	}
	return s
}
