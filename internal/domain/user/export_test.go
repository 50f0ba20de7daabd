package user

// SetHashCost 测试中降低bcrypt成本，返回恢复函数
func SetHashCost(cost int) func() {
	old := hashCost
	hashCost = cost
	return func() { hashCost = old }
}
