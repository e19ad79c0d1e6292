package dto

// NearbyRequest - запрос точек в радиусе
type NearbyRequest struct {
	Lat     float64 `query:"lat" validate:"min=-90,max=90"`
	Lon     float64 `query:"lon" validate:"min=-180,max=180"`
	RadiusM float64 `query:"radius_m" validate:"min=0,max=20038000"` // meters, half the circumference
}

// NearbyResponse - имена точек в радиусе, порядок не гарантируется
type NearbyResponse struct {
	Names []string `json:"names"`
	Total int      `json:"total"`
}

// AddVenueRequest - запрос на регистрацию точки.
// Пустое имя и координаты вне диапазона отклоняет реестр, а не валидатор.
type AddVenueRequest struct {
	Name string   `json:"name" validate:"max=256"`
	Lat  *float64 `json:"lat" validate:"required"`
	Lon  *float64 `json:"lon" validate:"required"`
}

// VenueResponse - зарегистрированная точка
type VenueResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// SeedRequest - запуск массовой загрузки случайных точек
type SeedRequest struct {
	Count   int  `json:"count" validate:"omitempty,min=1,max=5000000"`
	Replace bool `json:"replace"`
}

// SeedResponse - подтверждение запуска загрузки
type SeedResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	Replace bool   `json:"replace"`
}

// LoadReport - итог массовой загрузки
type LoadReport struct {
	Loaded     int     `json:"loaded"`
	Skipped    int     `json:"skipped"`
	DurationMs float64 `json:"duration_ms"`
}

// IndexStatsResponse - состояние индекса
type IndexStatsResponse struct {
	Points       int     `json:"points"`
	Cells        int     `json:"cells"`
	Step         uint8   `json:"step"`
	Shards       int     `json:"shards"`
	LargestCell  int     `json:"largest_cell"`
	CellHeightKm float64 `json:"cell_height_km"`
	Seeding      bool    `json:"seeding"`
}
