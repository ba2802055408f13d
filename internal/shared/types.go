package shared

// Table names shared by the change feed, the refresh counters and the
// activity log. Repositories must insert into the table their domain
// publishes events for, so the names live in one place.
const (
	TableBlogPosts       = "blog_posts"
	TableSocialPosts     = "social_posts"
	TableProductListings = "product_listings"
	TableSEOReports      = "seo_reports"
	TableWebsiteProjects = "website_projects"
	TableSiteAudits      = "site_audits"
	TableGeneratedImages = "generated_images"
	TableTeams           = "teams"
	TableTeamInvitations = "team_invitations"
	TableBrandKits       = "brand_kits"
)

// ContentTables are the tables a dashboard module can subscribe to for
// change events, and the set merged by the activity log.
var ContentTables = []string{
	TableBlogPosts,
	TableSocialPosts,
	TableProductListings,
	TableSEOReports,
	TableWebsiteProjects,
	TableSiteAudits,
	TableGeneratedImages,
}

// SubscribableTables also covers collaboration tables.
var SubscribableTables = append(append([]string{}, ContentTables...),
	TableTeams,
	TableTeamInvitations,
	TableBrandKits,
)
