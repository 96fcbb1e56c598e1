package domain

// Rarity colour classes used by the storefront.
const (
	RarityColorCommon    = "bg-gray-400"
	RarityColorUncommon  = "bg-green-400"
	RarityColorRare      = "bg-blue-400"
	RarityColorEpic      = "bg-purple-400"
	RarityColorLegendary = "bg-yellow-400"
	RarityColorMythical  = "bg-red-400"
)

// Payment method recorded on demo deposits.
const PaymentMethodDemo = "demo"
