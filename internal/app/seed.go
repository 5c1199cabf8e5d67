package app

import "github.com/storefront-go/storefront/internal/domain"

// defaultCatalog is the development seed catalog, loaded only when the
// products table is empty. Prices are integer minor units.
var defaultCatalog = []domain.Product{
	{
		ID:    "prod_canvas_tote",
		Title: "Canvas Tote Bag",
		Price: 1800,
		Src:   "/images/canvas-tote.jpg",
		Body:  "Heavyweight natural canvas tote with reinforced handles.",
	},
	{
		ID:    "prod_enamel_mug",
		Title: "Enamel Camp Mug",
		Price: 1400,
		Src:   "/images/enamel-mug.jpg",
		Body:  "12 oz enamel mug with a speckled finish. Campfire safe.",
	},
	{
		ID:    "prod_crew_tee",
		Title: "Organic Crew Neck Tee",
		Price: 2600,
		Src:   "/images/crew-tee.jpg",
		Body:  "Mid-weight organic cotton tee, garment dyed.",
	},
	{
		ID:    "prod_field_notebook",
		Title: "Field Notebook 3-Pack",
		Price: 1200,
		Src:   "/images/field-notebook.jpg",
		Body:  "Pocket notebooks with dot grid pages and stitched binding.",
	},
	{
		ID:    "prod_wool_beanie",
		Title: "Merino Wool Beanie",
		Price: 3200,
		Src:   "/images/wool-beanie.jpg",
		Body:  "Ribbed merino beanie, one size.",
	},
	{
		ID:    "prod_water_bottle",
		Title: "Insulated Water Bottle",
		Price: 3500,
		Src:   "/images/water-bottle.jpg",
		Body:  "750 ml double-walled stainless bottle. Keeps drinks cold for 24 hours.",
	},
}
