// Package driven lists what the core needs from infrastructure. Adapters
// under internal/adapters/driven implement these interfaces.
//
// Required: IngredientStore, BrandStore, ProductStore, OfferStore and
// ConfigStore.
//
// Optional: Pinger (without it health reports the database as
// disconnected) and MetricsRecorder (without it nothing is recorded).
//
// This package imports domain only.
package driven
