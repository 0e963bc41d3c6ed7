package gateway

const (
	gatewayStatusPath      = "/status/gateway-status"
	streamTransactionsPath = "/stream/transactions"
	entityDetailsPath      = "/state/entity/details"
	entityFungiblesPath    = "/state/entity/page/fungibles/"
	entityNonFungiblesPath = "/state/entity/page/non-fungibles/"
	nonFungibleDataPath    = "/state/non-fungible/data"
	kvsKeysPath            = "/state/key-value-store/keys"
	kvsDataPath            = "/state/key-value-store/data"
	validatorsListPath     = "/state/validators/list"
)

// Gateway request limits.
const (
	detailsBatchSize     = 20
	kvsBatchSize         = 100
	nonFungibleBatchSize = 100
	pageSize             = 100
)
