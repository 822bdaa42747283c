package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hs-nautilus/watchbill/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"Papadopoulos", "Nikolaou", "Georgiou", "Dimitriou", "Ioannou",
	"Christodoulou", "Vasileiou", "Antoniou", "Karagiannis", "Oikonomou",
	"Makris", "Alexiou", "Stavrou", "Panagiotou", "Michailidis",
}

var commonGivenNames = []string{
	"Nikolaos", "Georgios", "Dimitrios", "Ioannis", "Konstantinos",
	"Christos", "Panagiotis", "Vasileios", "Athanasios", "Michail",
	"Evangelos", "Spyridon", "Andreas", "Stylianos", "Theodoros",
}

func GenerateRandomFullName() string {
	return commonGivenNames[rand.Intn(len(commonGivenNames))] + " " + commonSurnames[rand.Intn(len(commonSurnames))]
}

var roles = []domain.Role{
	domain.RoleViewer,
	domain.RolePlanner,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""

	for _, part := range parts {
		length := rand.Intn(len(part)) + 1
		username += part[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

// GenerateRandomRegistryNumber 生成形如 N-12345 的登记号
func GenerateRandomRegistryNumber() string {
	return fmt.Sprintf("N-%05d", rand.Intn(100000))
}

// GenerateRandomPerson 生成一个随机的花名册成员，更种按军衔的可站范围随机选取
func GenerateRandomPerson() *domain.Person {
	rank := domain.Ranks[rand.Intn(len(domain.Ranks))]

	p := &domain.Person{
		RegistryNumber: GenerateRandomRegistryNumber(),
		FullName:       GenerateRandomFullName(),
		Rank:           rank,
	}

	eligible := p.RankEligibleWatches()
	p.PrimaryWatch = eligible[rand.Intn(len(eligible))]
	if len(eligible) > 1 && rand.Intn(2) == 0 {
		p.AlternateWatch = eligible[rand.Intn(len(eligible))]
		if p.AlternateWatch == p.PrimaryWatch {
			p.AlternateWatch = ""
		}
	}

	return p
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
