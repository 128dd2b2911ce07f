package config

// Tenant identifies one brand on a shared multi-tenant locator API.
type Tenant struct {
	BusinessID string
	SessionID  string
	Source     string
}

// Endpoints is the static brand configuration: fixed URLs, curated store
// lists and tenant identifiers. None of it is derived at runtime.
type Endpoints struct {
	MedmateLocations string
	MedmateDetail    string
	MedmateTenants   map[string]Tenant

	Blooms string

	RamsayStoreFinder string
	RamsayAPI         string

	ElfsightBoot map[string]string

	Community string

	FootesSitemap string

	Alive string
	YDC   string

	ChemistWarehouse string

	WPSL map[string]string

	BendigoSitemap string

	ChemistKing []string

	HealthyLifeSitemap string
	HealthyLifeIndex   string

	GoodPrice string

	WizardBase   string
	WizardFinder string

	Fullife string

	ChemistHub   []string
	CompleteCare []string
	Pennas       []string
	FriendlyCare []string

	HealthyWorld string
}

// DefaultEndpoints returns the production endpoint table.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		MedmateLocations: "https://app.medmate.com.au/connect/api/get_locations",
		MedmateDetail:    "https://app.medmate.com.au/connect/api/get_pharmacy",
		MedmateTenants: map[string]Tenant{
			"dds":   {BusinessID: "2", Source: "DDSPharmacyWebsite"},
			"amcal": {BusinessID: "4", Source: "AmcalPharmacyWebsite"},
		},

		Blooms: "https://api.storepoint.co/v2/15f056510a1d3a/locations",

		RamsayStoreFinder: "https://www.ramsaypharmacy.com.au/Store-Finder",
		RamsayAPI:         "https://ramsayportalapi-prod.azurewebsites.net/api/pharmacyclient/pharmacies",

		ElfsightBoot: map[string]string{
			"revive": "https://core.service.elfsight.com/p/boot/?page=https%3A%2F%2Frevivepharmacy.com.au%2Fstore-finder%2F&w=52ff3b25-4412-410c-bd3d-ea57b2814fac",
			"optimal": "https://core.service.elfsight.com/p/boot/?page=https%3A%2F%2Foptimalpharmacyplus.com.au%2Flocations%2F&w=d70b40db-e8b3-43bc-a63b-b3cce68941bf",
		},

		Community: "https://www.communitycarechemist.com.au/",

		FootesSitemap: "https://footespharmacies.com/stores-sitemap.xml",

		Alive: "https://stockist.co/api/v1/u6442/locations/all",
		YDC:   "https://bc-wh.myintegrator.com.au/api/store/d75m9rit2s/location-list",

		ChemistWarehouse: "https://www.chemistwarehouse.com.au/webapi/store/store-locator?BusinessGroupId=2&SearchByState=&SortByDistance=false",

		WPSL: map[string]string{
			"pharmasave": "https://www.pharmasave.com.au/wp-admin/admin-ajax.php?action=store_search&lat=&lng=&max_results=100&search_radius=100&autoload=1",
			"nova":       "https://www.novapharmacy.com.au/wp-admin/admin-ajax.php?action=store_search&lat=-&lng=&max_results=100&search_radius=100&autoload=1",
			"choice":     "https://www.choicepharmacy.com.au/wp-admin/admin-ajax.php?action=store_search&lat=&lng=&max_results=100&search_radius=100&autoload=1",
		},

		BendigoSitemap: "https://www.bendigoufs.com.au/page-sitemap.xml",

		ChemistKing: []string{
			"https://www.chemistking.com.au/colonellightgardens",
			"https://www.chemistking.com.au/frewville",
			"https://www.chemistking.com.au/hectorville",
			"https://www.chemistking.com.au/klemzig",
			"https://www.chemistking.com.au/morphettvale",
			"https://www.chemistking.com.au/mountgambier",
			"https://www.chemistking.com.au/murraybridge",
			"https://www.chemistking.com.au/springbank",
			"https://www.chemistking.com.au/welland",
		},

		HealthyLifeSitemap: "https://www.healthylife.com.au/sitemap/stores.xml",
		HealthyLifeIndex:   "https://www.healthylife.com.au/stores",

		GoodPrice: "https://www.goodpricepharmacy.com.au/amlocator/index/ajax/",

		WizardBase:   "https://www.wizardpharmacy.com.au",
		WizardFinder: "https://www.wizardpharmacy.com.au/store-finder",

		Fullife: "https://www.fullife.com.au/locations",

		ChemistHub: []string{
			"https://www.chemisthub.au/store-locator/chemist-hub-rockdale",
			"https://www.chemisthub.au/store-locator/chemist-hub-sanctuary-point",
			"https://www.chemisthub.au/store-locator/chemist-hub-valentine",
			"https://www.chemisthub.au/store-locator/panania-pharmacy",
			"https://www.chemisthub.au/store-locator/chemist-hub-ingleburn-medical-centre-pharmacy",
			"https://www.chemisthub.au/store-locator/chemist-hub-panania",
			"https://www.chemisthub.au/store-locator/chemist-hub-kareela-community-pharmacy",
			"https://www.chemisthub.au/store-locator/chemist-hub-wallsend",
		},
		CompleteCare: []string{
			"https://completecarepharmacies.com.au/locations/bairnsdale/",
			"https://completecarepharmacies.com.au/locations/bellambi/",
			"https://completecarepharmacies.com.au/locations/kurri-kurri/",
			"https://completecarepharmacies.com.au/locations/landsborough/",
			"https://completecarepharmacies.com.au/locations/penguin/",
			"https://completecarepharmacies.com.au/locations/rosny/",
			"https://completecarepharmacies.com.au/locations/south-hobart/",
		},
		Pennas: []string{
			"https://www.pennaspharmacy.com.au/locations/pennas-discount-pharmacy-edensor-park",
			"https://www.pennaspharmacy.com.au/locations/pennas-discount-pharmacy-prestons",
			"https://www.pennaspharmacy.com.au/locations/pennas-discount-pharmacy-cecil-hills",
			"https://www.pennaspharmacy.com.au/locations/pennas-discount-pharmacy-green-valley",
			"https://www.pennaspharmacy.com.au/locations/pennas-discount-pharmacy-liverpool",
		},
		FriendlyCare: []string{
			"https://www.friendlycare.com.au/headoffice",
			"https://www.friendlycare.com.au/ayr",
			"https://www.friendlycare.com.au/booval",
			"https://www.friendlycare.com.au/burleigh",
			"https://www.friendlycare.com.au/ipswichcbd",
			"https://www.friendlycare.com.au/jacobswell",
			"https://www.friendlycare.com.au/nundah",
			"https://www.friendlycare.com.au/sandgate",
		},

		HealthyWorld: "https://healthyworldpharmacy.com.au/pages/locations",
	}
}
