// Package wandb fetches experiment runs from the Weights & Biases
// GraphQL API.
//
// The client authenticates with an API key (HTTP basic auth, user
// "api"), pages through the project's runs, and throttles requests
// with a token bucket to stay under the service's rate limits. Run
// config values arrive wrapped as {"value": ...} objects and are
// unwrapped before being exposed as domain.Run fields.
package wandb
