package enum

// UserRole distinguishes the two kinds of accounts
type UserRole string

const (
	UserRoleShopOwner UserRole = "shop_owner"
	UserRoleCustomer  UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	return r == UserRoleShopOwner || r == UserRoleCustomer
}

// DashboardPath is where a client should send a user of this role
func (r UserRole) DashboardPath() string {
	if r == UserRoleShopOwner {
		return "/dashboard/shop-owner"
	}
	return "/dashboard/customer"
}
