package amadeus

// Upstream response shapes. Only the fields the mapper consumes are
// modeled; everything else in the payload is ignored on decode.

type flightOffersResponse struct {
	Data         []flightOffer `json:"data"`
	Dictionaries dictionaries  `json:"dictionaries"`
}

type dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

type flightOffer struct {
	ID                     string            `json:"id"`
	Itineraries            []itinerary       `json:"itineraries"`
	Price                  offerPrice        `json:"price"`
	ValidatingAirlineCodes []string          `json:"validatingAirlineCodes"`
	TravelerPricings       []travelerPricing `json:"travelerPricings"`
}

type itinerary struct {
	Duration string         `json:"duration"`
	Segments []offerSegment `json:"segments"`
}

type offerSegment struct {
	Departure   flightPoint `json:"departure"`
	Arrival     flightPoint `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
	Duration    string      `json:"duration"`
}

type flightPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

type offerPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type travelerPricing struct {
	FareOption string `json:"fareOption"`
}

type locationsResponse struct {
	Data []locationItem `json:"data"`
}

type locationItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	IataCode string          `json:"iataCode"`
	SubType  string          `json:"subType"`
	Address  locationAddress `json:"address"`
}

type locationAddress struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode"`
	CountryName string `json:"countryName"`
}
