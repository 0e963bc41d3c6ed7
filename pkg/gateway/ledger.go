package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/canopy-network/votecollector/pkg/utils"
	"github.com/shopspring/decimal"
)

type ledgerStateSelector struct {
	StateVersion uint64 `json:"state_version,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
}

func atState(stateVersion uint64) *ledgerStateSelector {
	if stateVersion == 0 {
		return nil
	}
	return &ledgerStateSelector{StateVersion: stateVersion}
}

type ledgerState struct {
	StateVersion uint64 `json:"state_version"`
}

// CurrentStateVersion returns the ledger head.
func (c *HTTPClient) CurrentStateVersion(ctx context.Context) (uint64, error) {
	var out struct {
		LedgerState ledgerState `json:"ledger_state"`
	}
	if err := c.post(ctx, gatewayStatusPath, struct{}{}, &out); err != nil {
		return 0, err
	}
	return out.LedgerState.StateVersion, nil
}

// StateVersionAt resolves a wall-clock time to the ledger state version current at that time.
func (c *HTTPClient) StateVersionAt(ctx context.Context, at time.Time) (uint64, error) {
	req := map[string]any{
		"at_ledger_state": ledgerStateSelector{Timestamp: at.UTC().Format(time.RFC3339Nano)},
		"limit_per_page":  1,
	}
	var out struct {
		LedgerState ledgerState `json:"ledger_state"`
	}
	if err := c.post(ctx, streamTransactionsPath, req, &out); err != nil {
		return 0, err
	}
	return out.LedgerState.StateVersion, nil
}

type streamResponse struct {
	NextCursor string `json:"next_cursor"`
	Items      []struct {
		StateVersion uint64 `json:"state_version"`
		IntentHash   string `json:"intent_hash"`
		Receipt      *struct {
			DetailedEvents []struct {
				Identifier struct {
					Event string `json:"event"`
				} `json:"identifier"`
				Emitter struct {
					Entity *struct {
						EntityAddress string `json:"entity_address"`
					} `json:"entity"`
				} `json:"emitter"`
				Payload struct {
					ProgrammaticJSON Value `json:"programmatic_json"`
				} `json:"payload"`
			} `json:"detailed_events"`
		} `json:"receipt"`
	} `json:"items"`
}

// TransactionStream returns one ascending page of committed user transactions with decoded events.
func (c *HTTPClient) TransactionStream(ctx context.Context, req StreamRequest) (TransactionPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = pageSize
	}
	body := map[string]any{
		"from_ledger_state": ledgerStateSelector{StateVersion: req.FromStateVersion},
		"limit_per_page":    limit,
		"order":             "Asc",
		"kind_filter":       "User",
		"opt_ins": map[string]bool{
			"affected_global_entities": true,
			"detailed_events":          true,
		},
	}
	if req.AffectedEntity != "" {
		body["affected_global_entities_filter"] = []string{req.AffectedEntity}
	}

	var out streamResponse
	if err := c.post(ctx, streamTransactionsPath, body, &out); err != nil {
		return TransactionPage{}, err
	}

	page := TransactionPage{NextCursor: out.NextCursor, Items: make([]Transaction, 0, len(out.Items))}
	for _, item := range out.Items {
		tx := Transaction{StateVersion: item.StateVersion, IntentHash: item.IntentHash}
		if item.Receipt != nil {
			for _, ev := range item.Receipt.DetailedEvents {
				e := Event{Name: ev.Identifier.Event, Payload: ev.Payload.ProgrammaticJSON}
				if ev.Emitter.Entity != nil {
					e.Emitter = ev.Emitter.Entity.EntityAddress
				}
				tx.Events = append(tx.Events, e)
			}
		}
		page.Items = append(page.Items, tx)
	}
	return page, nil
}

type entityDetailsResponse struct {
	Items []struct {
		Address string `json:"address"`
		Details *struct {
			Type                  string          `json:"type"`
			TotalSupply           decimal.Decimal `json:"total_supply"`
			State                 *Value          `json:"state"`
			NativeResourceDetails *struct {
				Kind                string `json:"kind"`
				UnitRedemptionValue []struct {
					ResourceAddress string           `json:"resource_address"`
					Amount          *decimal.Decimal `json:"amount"`
				} `json:"unit_redemption_value"`
			} `json:"native_resource_details"`
		} `json:"details"`
	} `json:"items"`
}

// EntityDetails fetches entity details in batches the gateway accepts.
func (c *HTTPClient) EntityDetails(ctx context.Context, addresses []string, opts DetailsOpts, stateVersion uint64) ([]EntityDetails, error) {
	out := make([]EntityDetails, 0, len(addresses))
	for _, batch := range utils.Chunk(addresses, detailsBatchSize) {
		body := map[string]any{
			"addresses":         batch,
			"aggregation_level": "Vault",
			"opt_ins":           map[string]bool{"native_resource_details": opts.NativeResourceDetails},
		}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		var resp entityDetailsResponse
		if err := c.post(ctx, entityDetailsPath, body, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			d := EntityDetails{Address: item.Address}
			if item.Details != nil {
				d.Type = item.Details.Type
				d.TotalSupply = item.Details.TotalSupply
				d.State = item.Details.State
				if n := item.Details.NativeResourceDetails; n != nil {
					d.NativeKind = n.Kind
					if len(n.UnitRedemptionValue) > 0 && n.UnitRedemptionValue[0].Amount != nil {
						d.RedemptionValue = *n.UnitRedemptionValue[0].Amount
					}
				}
			}
			out = append(out, d)
		}
	}
	return out, nil
}

type kvsEntry struct {
	Key struct {
		ProgrammaticJSON Value `json:"programmatic_json"`
	} `json:"key"`
	Value struct {
		ProgrammaticJSON Value `json:"programmatic_json"`
	} `json:"value"`
}

// KeyValueStoreData fetches the entries for the given keys. Missing keys are absent from the result.
func (c *HTTPClient) KeyValueStoreData(ctx context.Context, store string, keys []Value, stateVersion uint64) ([]KeyValueEntry, error) {
	out := make([]KeyValueEntry, 0, len(keys))
	for _, batch := range utils.Chunk(keys, kvsBatchSize) {
		reqKeys := make([]map[string]Value, 0, len(batch))
		for _, k := range batch {
			reqKeys = append(reqKeys, map[string]Value{"key_json": k})
		}
		body := map[string]any{
			"key_value_store_address": store,
			"keys":                    reqKeys,
		}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		var resp struct {
			Entries []kvsEntry `json:"entries"`
		}
		if err := c.post(ctx, kvsDataPath, body, &resp); err != nil {
			return nil, err
		}
		for _, e := range resp.Entries {
			out = append(out, KeyValueEntry{Key: e.Key.ProgrammaticJSON, Value: e.Value.ProgrammaticJSON})
		}
	}
	return out, nil
}

// KeyValueStoreEntries scans every key of a store and fetches the values.
func (c *HTTPClient) KeyValueStoreEntries(ctx context.Context, store string, stateVersion uint64) ([]KeyValueEntry, error) {
	var keys []Value
	cursor := ""
	for {
		body := map[string]any{
			"key_value_store_address": store,
			"limit_per_page":          pageSize,
		}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		if cursor != "" {
			body["cursor"] = cursor
		}
		var resp struct {
			NextCursor string `json:"next_cursor"`
			Items      []struct {
				Key struct {
					ProgrammaticJSON Value `json:"programmatic_json"`
				} `json:"key"`
			} `json:"items"`
		}
		if err := c.post(ctx, kvsKeysPath, body, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			keys = append(keys, item.Key.ProgrammaticJSON)
		}
		if resp.NextCursor == "" || len(resp.Items) == 0 {
			break
		}
		cursor = resp.NextCursor
	}
	if len(keys) == 0 {
		return nil, nil
	}
	return c.KeyValueStoreData(ctx, store, keys, stateVersion)
}

// FungibleBalances returns every fungible resource held by address, aggregated across vaults.
func (c *HTTPClient) FungibleBalances(ctx context.Context, address string, stateVersion uint64) ([]FungibleAmount, error) {
	var out []FungibleAmount
	cursor := ""
	for {
		body := map[string]any{
			"address":           address,
			"aggregation_level": "Global",
			"limit_per_page":    pageSize,
		}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		if cursor != "" {
			body["cursor"] = cursor
		}
		var resp struct {
			NextCursor string `json:"next_cursor"`
			Items      []struct {
				ResourceAddress string          `json:"resource_address"`
				Amount          decimal.Decimal `json:"amount"`
			} `json:"items"`
		}
		if err := c.post(ctx, entityFungiblesPath, body, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			out = append(out, FungibleAmount{ResourceAddress: item.ResourceAddress, Amount: item.Amount})
		}
		if resp.NextCursor == "" || len(resp.Items) == 0 {
			return out, nil
		}
		cursor = resp.NextCursor
	}
}

// NonFungibles returns the address's non-fungibles of the given resources, with their data.
func (c *HTTPClient) NonFungibles(ctx context.Context, address string, resources []string, stateVersion uint64) ([]NonFungibleResource, error) {
	wanted := make(map[string]bool, len(resources))
	for _, r := range resources {
		wanted[r] = true
	}

	ids := map[string][]string{}
	var order []string
	cursor := ""
	for {
		body := map[string]any{
			"address":           address,
			"aggregation_level": "Vault",
			"limit_per_page":    pageSize,
			"opt_ins":           map[string]bool{"non_fungible_include_nfids": true},
		}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		if cursor != "" {
			body["cursor"] = cursor
		}
		var resp struct {
			NextCursor string `json:"next_cursor"`
			Items      []struct {
				ResourceAddress string `json:"resource_address"`
				Vaults          struct {
					Items []struct {
						Items []string `json:"items"`
					} `json:"items"`
				} `json:"vaults"`
			} `json:"items"`
		}
		if err := c.post(ctx, entityNonFungiblesPath, body, &resp); err != nil {
			return nil, err
		}
		for _, item := range resp.Items {
			if !wanted[item.ResourceAddress] {
				continue
			}
			if _, seen := ids[item.ResourceAddress]; !seen {
				order = append(order, item.ResourceAddress)
			}
			for _, v := range item.Vaults.Items {
				ids[item.ResourceAddress] = append(ids[item.ResourceAddress], v.Items...)
			}
		}
		if resp.NextCursor == "" || len(resp.Items) == 0 {
			break
		}
		cursor = resp.NextCursor
	}

	out := make([]NonFungibleResource, 0, len(order))
	for _, resource := range order {
		items, err := c.nonFungibleData(ctx, resource, ids[resource], stateVersion)
		if err != nil {
			return nil, fmt.Errorf("non-fungible data %s: %w", resource, err)
		}
		out = append(out, NonFungibleResource{ResourceAddress: resource, Items: items})
	}
	return out, nil
}

func (c *HTTPClient) nonFungibleData(ctx context.Context, resource string, ids []string, stateVersion uint64) ([]NonFungible, error) {
	out := make([]NonFungible, 0, len(ids))
	for _, batch := range utils.Chunk(ids, nonFungibleBatchSize) {
		body := map[string]any{
			"resource_address": resource,
			"non_fungible_ids": batch,
		}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		var resp struct {
			NonFungibleIDs []struct {
				NonFungibleID string `json:"non_fungible_id"`
				IsBurned      bool   `json:"is_burned"`
				Data          *struct {
					ProgrammaticJSON *Value `json:"programmatic_json"`
				} `json:"data"`
			} `json:"non_fungible_ids"`
		}
		if err := c.post(ctx, nonFungibleDataPath, body, &resp); err != nil {
			return nil, err
		}
		for _, nf := range resp.NonFungibleIDs {
			item := NonFungible{ID: nf.NonFungibleID, Burned: nf.IsBurned}
			if nf.Data != nil {
				item.Data = nf.Data.ProgrammaticJSON
			}
			out = append(out, item)
		}
	}
	return out, nil
}

// Validators lists every validator with its LSU resource.
func (c *HTTPClient) Validators(ctx context.Context, stateVersion uint64) ([]Validator, error) {
	var out []Validator
	cursor := ""
	for {
		body := map[string]any{}
		if at := atState(stateVersion); at != nil {
			body["at_ledger_state"] = at
		}
		if cursor != "" {
			body["cursor"] = cursor
		}
		var resp struct {
			Validators struct {
				NextCursor string `json:"next_cursor"`
				Items      []struct {
					Address                  string `json:"address"`
					StakeUnitResourceAddress string `json:"stake_unit_resource_address"`
				} `json:"items"`
			} `json:"validators"`
		}
		if err := c.post(ctx, validatorsListPath, body, &resp); err != nil {
			return nil, err
		}
		for _, v := range resp.Validators.Items {
			out = append(out, Validator{Address: v.Address, StakeUnitResource: v.StakeUnitResourceAddress})
		}
		if resp.Validators.NextCursor == "" || len(resp.Validators.Items) == 0 {
			return out, nil
		}
		cursor = resp.Validators.NextCursor
	}
}
