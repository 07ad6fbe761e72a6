// Package acl is the anti-corruption layer between the service and the
// third-party HTTP APIs it calls: OpenAI for ritual text and illustrations,
// and the open-meteo geocoder for place suggestions.
//
// Wire DTOs stay unexported in the adapter that owns them. Adapters return
// domain types and domain errors only, so the app layer never sees a
// [clients.StatusError] or a provider error code.
//
// # Error translation
//
// [TranslateError] folds every failure mode into a domain error:
//
//   - circuit open, retries exhausted, transport failure → domain.UnavailableError
//   - provider error codes (content policy, bad key, quota) → the matching domain error
//   - remaining HTTP statuses → mapped by class, 5xx and 429 as unavailable
//
// Context cancellation is passed through unchanged so callers can tell a
// client that went away from a provider that failed.
//
// # Adding an adapter
//
// Embed [BaseAdapter], declare the request and response DTOs next to it, and
// translate with a [Translator]:
//
//	type Geocoder struct {
//	    acl.BaseAdapter
//	}
//
//	func (g *Geocoder) Search(ctx context.Context, q string) ([]domain.Location, error) {
//	    var resp searchResponse
//	    if err := g.GetJSON(ctx, "/v1/search", url.Values{"name": {q}}, &resp, "search locations"); err != nil {
//	        return nil, err // already a domain error
//	    }
//
//	    return acl.TranslateSlice(resp.Results, translateLocation)
//	}
package acl
