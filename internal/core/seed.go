package core

import "time"

// DeductionDescription tags the deposits created by the monthly deduction
// batch so they are recognizable in the ledger.
const DeductionDescription = "Automatic monthly deduction"

// Seed data for first run or when the persisted state is unreadable.
// Note the second project carries votes without voter ids: vote counts and
// the voter set are only kept in lockstep for votes cast through the vote
// operation.

func SeedMembers() []Member {
	return []Member{
		{
			ID:            1,
			Name:          "Fund Administrator",
			Username:      "admin",
			Password:      "admin",
			Phone:         "00000000",
			JoinDate:      NewDate(2023, 1, 1),
			Status:        StatusActive,
			Role:          RoleAdmin,
			MonthlyPledge: Money{Cents: 1000},
		},
		{
			ID:            2,
			Name:          "Ahmad Mohammed",
			Phone:         "51234567",
			JoinDate:      NewDate(2023, 2, 15),
			Status:        StatusActive,
			Role:          RoleMember,
			MonthlyPledge: Money{Cents: 1000},
		},
		{
			ID:            3,
			Name:          "Sara Ali",
			Phone:         "55678123",
			JoinDate:      NewDate(2023, 3, 10),
			Status:        StatusActive,
			Role:          RoleMember,
			MonthlyPledge: Money{Cents: 1000},
		},
	}
}

func SeedProjects() []Project {
	return []Project{
		{
			ID:             1,
			Title:          "Water well construction",
			Description:    "Dig a water well in a remote village to provide safe drinking water.",
			Cost:           Money{Cents: 150000},
			Status:         ProjectVoting,
			Votes:          1,
			VotedMemberIDs: []int64{2},
			Image:          "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09?auto=format&fit=crop&q=80&w=800",
		},
		{
			ID:             2,
			Title:          "Orphan sponsorship (monthly)",
			Description:    "Cover the monthly needs of five orphans.",
			Cost:           Money{Cents: 50000},
			Status:         ProjectActive,
			Votes:          5,
			VotedMemberIDs: []int64{},
			Image:          "https://images.unsplash.com/photo-1488521787991-ed7bbaae773c?auto=format&fit=crop&q=80&w=800",
		},
	}
}

func SeedTransactions() []Transaction {
	date := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	return []Transaction{
		{ID: 1, MemberID: 1, Type: Deposit, Amount: Money{Cents: 1000}, Date: date, Description: "Monthly subscription"},
		{ID: 2, MemberID: 2, Type: Deposit, Amount: Money{Cents: 1000}, Date: date, Description: "Monthly subscription"},
	}
}
