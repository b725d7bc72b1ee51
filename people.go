package venmo

import (
	"context"

	"github.com/venmo-unofficial/venmo-go/internal/transport"
)

// Person is a people-search hit. Its ID is the opaque user id payment
// submission needs as TargetUserID.
type Person struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	Handle      string `json:"handle"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	IsFriend    bool   `json:"isFriend"`
	Avatar      struct {
		URL string `json:"url"`
	} `json:"avatar"`
}

const peopleQuery = `
  query People($input: SearchInput!) {
    search(input: $input) {
      people {
        edges {
          node {
            displayName
            id
            type
            avatar {
              url
            }
            handle
            firstName
            lastName
            isFriend
          }
        }
      }
    }
  }
`

type peopleSearchResponse struct {
	Search struct {
		People struct {
			Edges []struct {
				Node Person `json:"node"`
			} `json:"edges"`
		} `json:"people"`
	} `json:"search"`
}

// Person resolves a human-entered name or handle to the first search match.
// Zero matches return (nil, nil), not an error.
func (c *Client) Person(ctx context.Context, name string) (*Person, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.session.AccessToken,
		"User-Agent":    transport.UserAgent,
	}
	variables := map[string]any{
		"input": map[string]string{"name": name},
	}

	var resp peopleSearchResponse
	if err := c.gql.Query(ctx, peopleQuery, variables, headers, &resp); err != nil {
		return nil, err
	}

	edges := resp.Search.People.Edges
	if len(edges) == 0 {
		return nil, nil
	}
	person := edges[0].Node
	return &person, nil
}
