package venmo

import (
	"context"

	"github.com/venmo-unofficial/venmo-go/internal/transport"
)

// FundingInstrument is one payment method on the account: the balance, a
// linked bank, or a linked card. Its ID is what PaymentRequest takes as
// FundingSourceID; the Roles flags say which payment kinds the instrument
// is legal for.
type FundingInstrument struct {
	ID             string             `json:"id"`
	InstrumentType string             `json:"instrumentType"`
	Name           string             `json:"name"`
	Fees           []Fee              `json:"fees"`
	Metadata       InstrumentMetadata `json:"metadata"`
	Roles          InstrumentRoles    `json:"roles"`
}

// InstrumentRoles flags what an instrument may fund.
type InstrumentRoles struct {
	MerchantPayments string `json:"merchantPayments"`
	PeerPayments     string `json:"peerPayments"`
}

// InstrumentMetadata is the union of the per-type metadata shapes the API
// returns; unset fields belong to the other instrument types.
type InstrumentMetadata struct {
	AvailableBalance *AvailableBalance `json:"availableBalance,omitempty"`
	BankName         string            `json:"bankName,omitempty"`
	IsVerified       bool              `json:"isVerified,omitempty"`
	LastFourDigits   string            `json:"lastFourDigits,omitempty"`
	UniqueIdentifier string            `json:"uniqueIdentifier,omitempty"`
	IssuerName       string            `json:"issuerName,omitempty"`
	NetworkName      string            `json:"networkName,omitempty"`
	ExpirationDate   string            `json:"expirationDate,omitempty"`
	ExpirationStatus string            `json:"expirationStatus,omitempty"`
	QuasiCash        bool              `json:"quasiCash,omitempty"`
}

// AvailableBalance is the balance instrument's current value.
type AvailableBalance struct {
	Value         float64 `json:"value"`
	DisplayString string  `json:"displayString"`
}

type fundingProfileResponse struct {
	Profile struct {
		Identity struct {
			Capabilities []string `json:"capabilities"`
		} `json:"identity"`
		Wallet []FundingInstrument `json:"wallet"`
	} `json:"profile"`
}

const fundingInstrumentsQuery = `
  query getUserFundingInstruments {
    profile {
      ... on Profile {
        identity {
          ... on Identity {
            capabilities
            __typename
          }
          __typename
        }
        wallet {
          id
          assets {
            logoThumbnail
            __typename
          }
          instrumentType
          name
          fees {
            feeType
            fixedAmount
            variablePercentage
            __typename
          }
          metadata {
            ...BalanceMetadata
            ... on BankFundingInstrumentMetadata {
              bankName
              isVerified
              lastFourDigits
              uniqueIdentifier
              __typename
            }
            ... on CardFundingInstrumentMetadata {
              issuerName
              lastFourDigits
              networkName
              isVenmoCard
              expirationDate
              expirationStatus
              quasiCash
              __typename
            }
            __typename
          }
          roles {
            merchantPayments
            peerPayments
            __typename
          }
          __typename
        }
        __typename
      }
      __typename
    }
  }

  fragment BalanceMetadata on BalanceFundingInstrumentMetadata {
    availableBalance {
      value
      transactionType
      displayString
      __typename
    }
    __typename
  }
`

// FundingInstruments queries the wallet list over GraphQL.
func (c *Client) FundingInstruments(ctx context.Context) ([]FundingInstrument, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization":   "Bearer " + c.session.AccessToken,
		"User-Agent":      transport.UserAgent,
		"Venmo-Client-Id": "10",
		"Venmo-Device-Id": c.deviceID,
	}

	var resp fundingProfileResponse
	if err := c.gql.Query(ctx, fundingInstrumentsQuery, nil, headers, &resp); err != nil {
		return nil, err
	}
	return resp.Profile.Wallet, nil
}
