package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/avpavlenko/jobboard/internal/platform/counter"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func hashPassword(pw string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), 12)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func daysAgo(d int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -d)
}

func randBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}

func ptr[T any](v T) *T { return &v }

func must(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// ── main ─────────────────────────────────────────────────────────────────────

func main() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "jobber"),
		envOr("DB_PASSWORD", "jobber"),
		envOr("DB_NAME", "jobber"),
		envOr("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping: %v", err)
	}
	fmt.Println("connected to database")

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback(ctx)

	// ── clean up previous seed data ──────────────────────────────────────
	const seedDomain = "@seed.jobboard.dev"
	_, _ = tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id IN (SELECT user_id FROM users WHERE email LIKE '%'||$1)`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM favorites WHERE candidate_id IN (SELECT candidate_id FROM users WHERE email LIKE '%'||$1)`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM applications WHERE candidate_id IN (SELECT candidate_id FROM users WHERE email LIKE '%'||$1)`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM featured_companies WHERE company_id IN (SELECT company_id FROM users WHERE email LIKE '%'||$1)`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM jobs WHERE company_id IN (SELECT company_id FROM users WHERE email LIKE '%'||$1)`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM users WHERE email LIKE '%'||$1`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM candidates WHERE email LIKE '%'||$1`, seedDomain)
	_, _ = tx.Exec(ctx, `DELETE FROM companies WHERE name LIKE 'Seed %'`)
	fmt.Println("cleaned previous seed data")

	var nextCompanyID, nextJobID, nextCandidateID, nextApplicationID, nextFavoriteID, nextUserID int64

	// ── 1. companies ─────────────────────────────────────────────────────
	type company struct {
		id                               int64
		name, country, state, city, url string
		sizeMin, sizeMax                 int
	}
	companies := []company{
		{0, "Seed TechNova", "United States", "California", "San Francisco", "https://technova.example", 200, 500},
		{0, "Seed CloudScale Inc.", "Canada", "Ontario", "Toronto", "https://cloudscale.example", 50, 200},
		{0, "Seed DataPulse", "United States", "Texas", "Austin", "https://datapulse.example", 20, 50},
		{0, "Seed GreenByte Solutions", "United States", "California", "Los Angeles", "https://greenbyte.example", 10, 50},
		{0, "Seed Quantum Labs", "Mexico", "Jalisco", "Guadalajara", "https://quantumlabs.example", 100, 200},
		{0, "Seed FinEdge", "United States", "Texas", "Dallas", "https://finedge.example", 500, 1000},
	}
	for i := range companies {
		nextCompanyID++
		companies[i].id = nextCompanyID
		createdAt := daysAgo(randBetween(90, 120))
		_, err = tx.Exec(ctx,
			`INSERT INTO companies (company_id, name, description, country, state, city, address, url, company_size_min, company_size_max, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,'',$7,$8,$9,$10,$10)`,
			companies[i].id, companies[i].name, companies[i].name+" builds products people rely on every day.",
			companies[i].country, companies[i].state, companies[i].city, companies[i].url,
			companies[i].sizeMin, companies[i].sizeMax, createdAt,
		)
		must(err, "create company "+companies[i].name)
	}
	fmt.Printf("created %d companies\n", len(companies))

	// ── 2. featured companies ────────────────────────────────────────────
	featured := []int{0, 2}
	for _, idx := range featured {
		_, err = tx.Exec(ctx,
			`INSERT INTO featured_companies (company_id, created_at) VALUES ($1,$2)`,
			companies[idx].id, daysAgo(randBetween(1, 30)),
		)
		must(err, "feature company")
	}
	fmt.Printf("featured %d companies\n", len(featured))

	// ── 3. jobs ───────────────────────────────────────────────────────────
	type job struct {
		id                    int64
		companyIdx            int
		title                 string
		minSalary             *float64
		maxSalary             *float64
		payPeriod             string
		currency              string
		workType              string
		workLocationType      string
		city, state, country  string
		listedDaysAgo         int
	}
	jobs := []job{
		{0, 0, "Senior Backend Engineer", ptr(150000.0), ptr(190000.0), "YEARLY", "USD", "FULL_TIME", "HYBRID", "San Francisco", "California", "United States", 5},
		{0, 0, "Staff Platform Engineer", ptr(190000.0), ptr(230000.0), "YEARLY", "USD", "FULL_TIME", "REMOTE", "San Francisco", "California", "United States", 12},
		{0, 1, "Backend Engineer (Go)", ptr(120000.0), ptr(150000.0), "YEARLY", "CAD", "FULL_TIME", "REMOTE", "Toronto", "Ontario", "Canada", 3},
		{0, 1, "Site Reliability Engineer", ptr(110000.0), ptr(140000.0), "YEARLY", "CAD", "FULL_TIME", "HYBRID", "Toronto", "Ontario", "Canada", 20},
		{0, 2, "Full-Stack Developer", ptr(90000.0), ptr(120000.0), "YEARLY", "USD", "FULL_TIME", "ONSITE", "Austin", "Texas", "United States", 8},
		{0, 2, "Data Engineer", ptr(100000.0), ptr(135000.0), "YEARLY", "USD", "FULL_TIME", "HYBRID", "Austin", "Texas", "United States", 15},
		{0, 3, "Software Engineer II", ptr(95000.0), ptr(125000.0), "YEARLY", "USD", "FULL_TIME", "ONSITE", "Los Angeles", "California", "United States", 30},
		{0, 4, "Machine Learning Engineer", ptr(130000.0), ptr(170000.0), "YEARLY", "USD", "FULL_TIME", "HYBRID", "Guadalajara", "Jalisco", "Mexico", 7},
		{0, 4, "Senior Software Engineer - AI", ptr(140000.0), ptr(180000.0), "YEARLY", "USD", "FULL_TIME", "REMOTE", "Guadalajara", "Jalisco", "Mexico", 2},
		{0, 5, "Backend Engineer - Payments", ptr(135000.0), ptr(165000.0), "YEARLY", "USD", "FULL_TIME", "ONSITE", "Dallas", "Texas", "United States", 18},
		{0, 5, "VP of Engineering", ptr(220000.0), ptr(280000.0), "YEARLY", "USD", "FULL_TIME", "HYBRID", "Dallas", "Texas", "United States", 40},
	}
	for i := range jobs {
		nextJobID++
		jobs[i].id = nextJobID
		listed := daysAgo(jobs[i].listedDaysAgo)
		normalized := normalizedSalary(jobs[i].minSalary, jobs[i].maxSalary, jobs[i].payPeriod)
		_, err = tx.Exec(ctx,
			`INSERT INTO jobs (job_id, title, description, min_salary, max_salary, pay_period, currency,
			                   listed_time, work_type, work_location_type, normalized_salary,
			                   city, state, country, company_id, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)`,
			jobs[i].id, jobs[i].title, jobs[i].title+" role on a team that ships fast and owns its roadmap.",
			jobs[i].minSalary, jobs[i].maxSalary, jobs[i].payPeriod, jobs[i].currency,
			listed, jobs[i].workType, jobs[i].workLocationType, normalized,
			jobs[i].city, jobs[i].state, jobs[i].country, companies[jobs[i].companyIdx].id, listed,
		)
		must(err, "create job "+jobs[i].title)
	}
	fmt.Printf("created %d jobs\n", len(jobs))

	// ── 4. candidates + their login users ────────────────────────────────
	type candidate struct {
		id                   int64
		fullName, email      string
		country, state, city string
		headline             string
	}
	candidates := []candidate{
		{0, "Alex Rivera", "alex.rivera" + seedDomain, "United States", "California", "San Francisco", "Backend engineer, 6 years Go + Postgres"},
		{0, "Priya Nair", "priya.nair" + seedDomain, "Canada", "Ontario", "Toronto", "Full-stack developer, React and Node"},
		{0, "Diego Fernandez", "diego.fernandez" + seedDomain, "Mexico", "Jalisco", "Guadalajara", "ML engineer, PyTorch and distributed training"},
		{0, "Sam Okafor", "sam.okafor" + seedDomain, "United States", "Texas", "Austin", "Data engineer, Spark and Airflow"},
	}
	for i := range candidates {
		nextCandidateID++
		candidates[i].id = nextCandidateID
		createdAt := daysAgo(randBetween(60, 100))
		_, err = tx.Exec(ctx,
			`INSERT INTO candidates (candidate_id, full_name, email, phone, linkedin_url, country, state, city, headline, created_at)
			 VALUES ($1,$2,$3,NULL,NULL,$4,$5,$6,$7,$8)`,
			candidates[i].id, candidates[i].fullName, candidates[i].email,
			candidates[i].country, candidates[i].state, candidates[i].city, candidates[i].headline, createdAt,
		)
		must(err, "create candidate "+candidates[i].fullName)

		nextUserID++
		_, err = tx.Exec(ctx,
			`INSERT INTO users (user_id, email, full_name, password_hash, actor_type, company_id, candidate_id, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,'candidate',NULL,$5,$6,$6)`,
			nextUserID, candidates[i].email, candidates[i].fullName, hashPassword("password123"), candidates[i].id, createdAt,
		)
		must(err, "create candidate login for "+candidates[i].fullName)
	}
	fmt.Printf("created %d candidates\n", len(candidates))

	// ── 5. company recruiter users ────────────────────────────────────────
	for i := range companies {
		nextUserID++
		email := fmt.Sprintf("recruiter%d%s", i+1, seedDomain)
		_, err = tx.Exec(ctx,
			`INSERT INTO users (user_id, email, full_name, password_hash, actor_type, company_id, candidate_id, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,'company',$5,NULL,$6,$6)`,
			nextUserID, email, "Recruiter at "+companies[i].name, hashPassword("password123"), companies[i].id, daysAgo(100),
		)
		must(err, "create recruiter user for "+companies[i].name)
	}
	fmt.Printf("created %d recruiter users\n", len(companies))

	// ── 6. applications ───────────────────────────────────────────────────
	type appDef struct {
		candidateIdx, jobIdx int
		status               string
		appliedDaysAgo       int
	}
	appDefs := []appDef{
		{0, 0, "INTERVIEW", 4},
		{0, 1, "APPLIED", 2},
		{1, 2, "REVIEWING", 3},
		{1, 3, "REJECTED", 18},
		{2, 7, "OFFERED", 6},
		{2, 8, "INTERVIEW", 2},
		{3, 5, "APPLIED", 10},
		{3, 9, "HIRED", 30},
	}
	for _, ad := range appDefs {
		nextApplicationID++
		appliedAt := daysAgo(ad.appliedDaysAgo)
		_, err = tx.Exec(ctx,
			`INSERT INTO applications (application_id, job_id, candidate_id, company_id, status, applied_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$6)`,
			nextApplicationID, jobs[ad.jobIdx].id, candidates[ad.candidateIdx].id, companies[jobs[ad.jobIdx].companyIdx].id,
			ad.status, appliedAt,
		)
		must(err, "create application")
	}
	fmt.Printf("created %d applications\n", len(appDefs))

	// ── 7. favorites ───────────────────────────────────────────────────────
	type favDef struct{ candidateIdx, jobIdx int }
	favDefs := []favDef{
		{0, 2}, {0, 4}, {1, 0}, {2, 1}, {3, 8},
	}
	for _, fd := range favDefs {
		nextFavoriteID++
		_, err = tx.Exec(ctx,
			`INSERT INTO favorites (favorite_id, candidate_id, job_id, created_at) VALUES ($1,$2,$3,$4)`,
			nextFavoriteID, candidates[fd.candidateIdx].id, jobs[fd.jobIdx].id, daysAgo(randBetween(1, 20)),
		)
		must(err, "create favorite")
	}
	fmt.Printf("created %d favorites\n", len(favDefs))

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	// ── sync counters so subsequently minted ids never collide ───────────
	ctr := counter.New(pool)
	must(ctr.SyncTo(ctx, counter.Company, nextCompanyID), "sync company counter")
	must(ctr.SyncTo(ctx, counter.Job, nextJobID), "sync job counter")
	must(ctr.SyncTo(ctx, counter.Candidate, nextCandidateID), "sync candidate counter")
	must(ctr.SyncTo(ctx, counter.Application, nextApplicationID), "sync application counter")
	must(ctr.SyncTo(ctx, counter.Favorite, nextFavoriteID), "sync favorite counter")
	must(ctr.SyncTo(ctx, counter.User, nextUserID), "sync user counter")

	fmt.Println("\nseed completed successfully")
	fmt.Printf("  candidate login: %s / password123\n", candidates[0].email)
	fmt.Printf("  company login:   recruiter1%s / password123\n", seedDomain)
}

// normalizedSalary mirrors modules/jobs/model.NormalizedSalary so the
// seed data satisfies the same invariant the service layer enforces
// for jobs created through the API.
func normalizedSalary(minSalary, maxSalary *float64, payPeriod string) *float64 {
	factors := map[string]float64{
		"HOURLY":   2080,
		"WEEKLY":   52,
		"BIWEEKLY": 26,
		"MONTHLY":  12,
		"YEARLY":   1,
	}
	if minSalary == nil || maxSalary == nil {
		return nil
	}
	factor, ok := factors[payPeriod]
	if !ok {
		return nil
	}
	n := ((*minSalary + *maxSalary) / 2) * factor
	return &n
}
