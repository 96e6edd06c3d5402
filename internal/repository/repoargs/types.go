package repoargs

type RepositoryName string

const (
	RestaurantRepoName RepositoryName = "restaurant"
	MenuItemRepoName   RepositoryName = "menu_item"
	AccountRepoName    RepositoryName = "account"
	OrderRepoName      RepositoryName = "order"
	LoanRepoName       RepositoryName = "loan"
)
