// Package plan is the single source of truth for pricing plans, the revenue
// model reference, and the per-feature enablement map.  Earlier iterations
// of the product duplicated these tables in every feature; they are
// collapsed here into one static catalog keyed by name.
package plan

// Plan describes one pricing tier.  PriceAnnual is zero when a tier has no
// annual option; PricePerAction is zero except for metered tiers.
type Plan struct {
    Name           string   `json:"name"`
    PriceMonth     float64  `json:"price_month"`
    PriceAnnual    float64  `json:"price_annual,omitempty"`
    PricePerAction float64  `json:"price_per_action,omitempty"`
    Features       []string `json:"features"`
    Badge          string   `json:"badge"`
    TransactionFee float64  `json:"transaction_fee"`
}

// Catalog lists every tier in display order.
func Catalog() []Plan {
    return []Plan{
        {
            Name:       "Freemium",
            PriceMonth: 0,
            Features: []string{
                "Basic analytics dashboard",
                "Access 1 module",
                "Community support",
            },
            Badge:          "Free Forever",
            TransactionFee: 0.15,
        },
        {
            Name:        "Pro",
            PriceMonth:  29,
            PriceAnnual: 290, // 2 months free
            Features: []string{
                "All 8 modules unlocked",
                "Export/Download analytics",
                "Advanced AI features",
                "Marketplace selling enabled",
                "Email/chat support",
            },
            Badge:          "Most Popular",
            TransactionFee: 0.08,
        },
        {
            Name:        "Enterprise",
            PriceMonth:  199,
            PriceAnnual: 1900, // 2 months free
            Features: []string{
                "White-label platform",
                "Custom AI model tuning",
                "API access/integrations",
                "Bulk/team seats (10+)",
                "SLA support",
            },
            Badge:          "Best Value",
            TransactionFee: 0.05,
        },
        {
            Name:           "Pay-per-Use",
            PricePerAction: 1.99,
            Features: []string{
                "No subscription required",
                "Pay only for usage (API call, export, etc.)",
            },
            Badge:          "Flexible",
            TransactionFee: 0.12,
        },
    }
}

// ByName looks a tier up by its exact name.
func ByName(name string) (Plan, bool) {
    for _, p := range Catalog() {
        if p.Name == name {
            return p, true
        }
    }
    return Plan{}, false
}

// RevenueModel is one entry of the graded revenue model reference.
type RevenueModel struct {
    Grade     string `json:"grade"`
    Category  string `json:"category"`
    Name      string `json:"name"`
    Desc      string `json:"desc"`
    Rationale string `json:"rationale"`
}

// referenceModels is the graded catalog, best grades first.
var referenceModels = []RevenueModel{
    {"A", "Recurring Revenue", "Subscription", "Ongoing access fee (e.g., Netflix, Salesforce)", "High predictability, 70-90% margins, infinite scalability."},
    {"A", "Recurring Revenue", "Membership Site", "Community, perks (e.g., Patreon)", "Predictable, scalable, high LTV."},
    {"A", "Licensing/Franchising", "Licensing IP", "License IP or patents (e.g., IBM)", "Passive, scalable, recurring, low risk."},
    {"A", "Data Sales", "DaaS/Data Monetization", "Sell insights/aggregates (e.g., G2, CB Insights)", "High value, 100% margins, scalable, privacy risk."},
    {"A", "Digital Products", "Online Courses/eBooks", "Sell digital content (e.g., Udemy)", "90%+ margins, passive, top profitability."},
    {"A", "Marketplaces/Aggregator", "Marketplace/Aggregator", "Connect buyers/sellers (e.g., Amazon, Yelp)", "Network effects, high profitability."},
    {"A-", "Freemium", "Freemium", "Free tier + paid upgrades (e.g., Spotify)", "Low acquisition cost, high conversion potential."},
    {"A-", "Affiliate Marketing", "Affiliate Marketing", "Promote for commission (e.g., Amazon Assoc)", "Zero inventory, 20-50% commission, passive."},
    {"B+", "Transaction-Based", "Commission/Fees", "Fee per sale (e.g., eBay, Stripe)", "Scalable, 10-30% fees."},
    {"B+", "Usage-Based", "Pay-Per-Use", "Charge by consumption (e.g., AWS)", "Aligns value, 40-70% margin."},
    {"B+", "Integrator/Layer Player", "Layer Player", "Control value chain (e.g., Apple HW/SW)", "Cost savings, complex ops."},
    {"B", "Advertising-Based", "Ads/Sponsorship", "Earn from ads/views (e.g., Google, LinkedIn)", "Scalable with traffic, 20-50% margin."},
    {"B", "Product Sales", "Physical/Digital Sales", "E-commerce (e.g., Shopify, DTC)", "Direct revenue, inventory risk."},
    {"B", "Service-Based", "Consulting/Agency", "Sell expertise/time (e.g., Upwork)", "High margin, time-limited."},
    {"B", "Buy Now Pay Later", "BNPL/Interest", "Financing/installments (e.g., Klarna)", "20-40% returns, default risk."},
    {"B", "App Development", "App Sales", "Build/sell apps", "Demand, dev cost."},
    {"B", "Experience Selling", "Experiences", "Premium events/experiences (e.g., Disney)", "Loyalty, high delivery cost."},
    {"B", "From Push to Pull", "Customer-Driven", "Custom orders (e.g., Dell PCs)", "Reduces waste, scalable with data."},
    {"B", "Customer Loyalty", "Loyalty/Rewards", "Incentivize repeats (e.g., Starbucks app)", "Retention, scalable digital."},
    {"B-", "Ingredient Branding", "Co-Branding", "Promote component (e.g., Intel Inside)", "Boost perception, partner-dependent."},
    {"B-", "Cash Machine", "Pre-Payment", "Advance bookings", "Funds growth, refund risk."},
}

// ReferenceModels returns the graded revenue model reference.
func ReferenceModels() []RevenueModel {
    out := make([]RevenueModel, len(referenceModels))
    copy(out, referenceModels)
    return out
}

// featureModels maps each product feature to the revenue models active on
// it.  Keys are the public feature names shown in the product navigation.
var featureModels = map[string][]string{
    "Audience Insights Dashboard": {
        "Subscription", "DaaS/Data Monetization", "BNPL/Interest", "Freemium", "Loyalty/Rewards", "Commission/Fees", "Ads/Sponsorship",
    },
    "Accessible Streaming Platform": {
        "Freemium", "Subscription", "BNPL/Interest", "Ads/Sponsorship", "Pay-Per-Use", "Experiences", "Online Courses/eBooks", "Affiliate Marketing",
    },
    "TDM AI Marketing Platform": {
        "Licensing IP", "App Sales", "Consulting/Agency", "Marketplace/Aggregator", "Layer Player", "Customer-Driven",
    },
    "Creator-to-Fan AI CRM": {
        "Membership Site", "Marketplace/Aggregator", "Commission/Fees", "Affiliate Marketing", "Loyalty/Rewards",
    },
    "Digital Merch & NFT Platform": {
        "Marketplace/Aggregator", "Online Courses/eBooks", "Co-Branding", "Commission/Fees", "Freemium", "Ads/Sponsorship", "Pre-Payment",
    },
    "Live Experience Marketplace": {
        "Marketplace/Aggregator", "Experiences", "Affiliate Marketing",
    },
    "TDM Digital Publishing Studio": {
        "Online Courses/eBooks", "Licensing IP", "Affiliate Marketing", "Commission/Fees",
    },
    "Smart Merch & Print-on-Demand Hub": {
        "Physical/Digital Sales", "Freemium", "Commission/Fees", "Loyalty/Rewards",
    },
}

// Features lists the feature names that have an enablement entry.
func Features() []string {
    out := make([]string, 0, len(featureModels))
    for _, f := range featureOrder {
        out = append(out, f)
    }
    return out
}

// featureOrder keeps Features() deterministic and in product display order.
var featureOrder = []string{
    "Audience Insights Dashboard",
    "Accessible Streaming Platform",
    "TDM AI Marketing Platform",
    "Creator-to-Fan AI CRM",
    "Digital Merch & NFT Platform",
    "Live Experience Marketplace",
    "TDM Digital Publishing Studio",
    "Smart Merch & Print-on-Demand Hub",
}

// EnabledModels returns the full reference entries active for a feature, in
// reference order.  Unknown features yield an empty slice.
func EnabledModels(feature string) []RevenueModel {
    names := featureModels[feature]
    enabled := make(map[string]bool, len(names))
    for _, n := range names {
        enabled[n] = true
    }
    var out []RevenueModel
    for _, m := range referenceModels {
        if enabled[m.Name] {
            out = append(out, m)
        }
    }
    return out
}
