package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mindcare/internal/admin"
	"mindcare/internal/api"
	"mindcare/internal/app"
	"mindcare/internal/booking"
	"mindcare/internal/breathing"
	"mindcare/internal/forum"
	"mindcare/internal/i18n"
	"mindcare/internal/memorygame"
	"mindcare/internal/pending"
	"mindcare/internal/relaxation"
	"mindcare/internal/wellness"
)

type command struct {
	summary string
	// path is the view the command belongs to; empty means public.
	path string
	run  func(ctx context.Context, a *app.App, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"login":        {"sign in", "", runLogin},
		"register":     {"create an account and sign in", "", runRegister},
		"logout":       {"sign out", "", runLogout},
		"whoami":       {"show the signed-in user", "", runWhoami},
		"lang":         {"list languages or switch to one", "", runLang},
		"counsellors":  {"list counsellors", "/counselors", runCounsellors},
		"slots":        {"list a counsellor's time slots", "/counselors", runSlots},
		"book":         {"book an appointment", "/counselors", runBook},
		"appointments": {"list upcoming appointments", "/counselors", runAppointments},
		"cancel":       {"cancel an appointment", "/counselors", runCancel},
		"status":       {"set an appointment's status", app.PathCounsellorDashboard, runStatus},
		"inbox":        {"show alerts for counsellors", app.PathCounsellorDashboard, runInbox},
		"chat":         {"talk to the support assistant", "/ai-support", runChat},
		"mood":         {"record today's mood", app.PathStudentDashboard, runMood},
		"stats":        {"show mood history, points and streak", app.PathStudentDashboard, runStats},
		"forum":        {"list forum posts", "/peer-forum", runForum},
		"post":         {"share a forum post", "/peer-forum", runPost},
		"like":         {"like or unlike a post", "/peer-forum", runLike},
		"reply":        {"reply to a post", "/peer-forum", runReply},
		"delete-post":  {"delete a post", "/peer-forum", runDeletePost},
		"vouchers":     {"list vouchers", "/redeem", runVouchers},
		"redeem":       {"redeem a voucher", "/redeem", runRedeem},
		"admin":        {"show campus analytics", app.PathAdminDashboard, runAdmin},
		"breathe":      {"guided 4-4-6 breathing", "/relaxation", runBreathe},
		"relax":        {"list relaxation sessions or play one", "/relaxation", runRelax},
		"resources":    {"list self-help resources", "/resources", runResources},
		"game":         {"play memory match", "/games", runGame},
	}
}

func newFlags(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func readLine(prompt string) string {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func requireArgs(fs *flag.FlagSet, n int, usage string) error {
	if fs.NArg() < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

func runLogin(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password; prompted when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		*email = readLine("Email: ")
	}
	if *password == "" {
		*password = readLine("Password: ")
	}

	user, err := a.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("%s, %s\n", a.Translator.T("auth.welcome"), user.DisplayName())
	fmt.Printf("Dashboard: %s\n", app.DashboardFor(user.Role))
	return nil
}

func runRegister(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("register")
	req := api.RegisterRequest{}
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.Name, "name", "", "display name")
	fs.StringVar(&req.Role, "role", "", "student, counsellor or admin")
	fs.StringVar(&req.Campus, "campus", "", "campus name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.API.Register(ctx, req)
	if err != nil {
		return err
	}
	if err := a.Session.Establish(ctx, result.Token, result.User); err != nil {
		return err
	}
	fmt.Printf("%s, %s\n", a.Translator.T("auth.welcome"), result.User.DisplayName())
	return nil
}

func runLogout(ctx context.Context, a *app.App, _ []string) error {
	if err := a.Session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println(a.Translator.T("auth.signedOut"))
	return nil
}

func runWhoami(_ context.Context, a *app.App, _ []string) error {
	user := a.Session.User()
	if user == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s points=%d streak=%d\n", user.DisplayName(), user.Email, user.Role, user.Points, user.StreakCount)
	return nil
}

func runLang(ctx context.Context, a *app.App, args []string) error {
	if len(args) > 0 {
		if err := a.Translator.SetLanguage(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println(a.Translator.T("site.title"))
		return nil
	}
	current := a.Translator.Current()
	for _, language := range i18n.Languages() {
		marker := " "
		if language.Code == current {
			marker = "*"
		}
		fmt.Printf("%s %-3s %-10s %s\n", marker, language.Code, language.Name, language.NativeName)
	}
	return nil
}

func runCounsellors(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("counsellors")
	filter := booking.Filter{}
	fs.StringVar(&filter.Specialization, "specialization", booking.Any, "only this specialization")
	fs.StringVar(&filter.Language, "language", booking.Any, "only counsellors speaking this language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	counsellors, err := a.Booking.Counsellors(ctx)
	if err != nil {
		return err
	}
	fmt.Println(a.Translator.T("counselors.title"))
	for _, c := range booking.FilterCounsellors(counsellors, filter) {
		fmt.Printf("%s  %s (%s)\n", c.ID, c.Name, c.Title)
		fmt.Printf("    %s, %s | %s (%s) | %s\n",
			c.Location, c.Campus, c.AvailableHours, strings.Join(c.AvailableDays, ", "), strings.Join(c.Languages, ", "))
	}
	return nil
}

func runSlots(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("slots")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireArgs(fs, 1, "slots <counsellor-id>"); err != nil {
		return err
	}
	counsellor, err := a.Booking.FindCounsellor(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", counsellor.Name, strings.Join(counsellor.AvailableDays, ", "))
	for _, slot := range booking.SlotsFor(counsellor.AvailableHours) {
		fmt.Println("  " + slot)
	}
	return nil
}

func runBook(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("book")
	counsellorID := fs.String("counsellor", "", "counsellor id")
	date := fs.String("date", "", "date as YYYY-MM-DD")
	slot := fs.String("time", "", `slot such as "10:00 AM"`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	counsellor, err := a.Booking.FindCounsellor(ctx, *counsellorID)
	if err != nil {
		return err
	}
	appointment, err := a.Booking.Book(ctx, booking.Request{Counsellor: counsellor, Date: *date, Slot: *slot})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s %s with %s (%s)\n", a.Translator.T("booking.confirmed"), appointment.Date, appointment.Time, counsellor.Name, appointment.ID)
	return nil
}

func printAppointments(appointments []api.Appointment) {
	if len(appointments) == 0 {
		fmt.Println("no upcoming appointments")
		return
	}
	for _, appointment := range appointments {
		counsellor := appointment.Counsellor.Display()
		if counsellor == "" {
			counsellor = "Counsellor"
		}
		fmt.Printf("%s  %s %s  %s  [%s]\n", appointment.ID, appointment.Date, appointment.Time, counsellor, appointment.Status)
	}
}

func runAppointments(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("appointments")
	limit := fs.Int("limit", 0, "show at most this many; 0 shows all")
	all := fs.Bool("all", false, "include completed and cancelled appointments")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		appointments []api.Appointment
		err          error
	)
	if *all {
		appointments, err = a.Booking.All(ctx)
	} else {
		appointments, err = a.Booking.Upcoming(ctx, *limit)
	}
	if err != nil {
		return err
	}
	fmt.Println(a.Translator.T("dashboard.appointment"))
	printAppointments(appointments)
	return nil
}

func runCancel(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("cancel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireArgs(fs, 1, "cancel <appointment-id>"); err != nil {
		return err
	}
	remaining, err := a.Booking.Cancel(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	printAppointments(remaining)
	return nil
}

func runStatus(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireArgs(fs, 2, "status <appointment-id> scheduled|completed|cancelled"); err != nil {
		return err
	}
	appointment, err := a.Booking.SetStatus(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	printAppointments([]api.Appointment{*appointment})
	return nil
}

func runInbox(ctx context.Context, a *app.App, _ []string) error {
	alerts, err := a.Chat.Inbox(ctx)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Println("no alerts")
	}
	for _, alert := range alerts {
		from := "anonymous"
		if alert.Student != nil {
			from = alert.Student.Display()
		}
		fmt.Printf("[%s] %s  %s: %s\n", strings.ToUpper(alert.Level), alert.CreatedAt.Local().Format(time.RFC822), from, alert.Message)
	}
	return nil
}

func runChat(ctx context.Context, a *app.App, args []string) error {
	fmt.Println(a.Translator.T("chat.title"))
	for _, message := range a.Chat.History() {
		fmt.Println(message.Content)
	}

	if len(args) > 0 {
		reply, _ := a.Chat.Send(ctx, strings.Join(args, " "))
		fmt.Println(reply.Content)
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			return nil
		}
		if reply, ok := a.Chat.Send(ctx, line); ok {
			fmt.Println(reply.Content)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func runMood(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("mood")
	source := fs.String("source", wellness.SourceSelf, "where the mood came from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireArgs(fs, 1, "mood "+strings.Join(wellness.Moods, "|")); err != nil {
		return err
	}

	reward, err := a.Wellness.CheckIn(ctx, fs.Arg(0), *source)
	if err != nil {
		for _, entry := range a.Wellness.CheckIns() {
			if entry.Status == pending.Failed {
				fmt.Printf("check-in %s not saved: %v\n", entry.Value.Mood, entry.Err)
			}
		}
		return err
	}
	fmt.Printf("+%d %s (%s: %d, %s: %d)\n",
		reward.PointsAwarded, strings.ToLower(a.Translator.T("dashboard.points")),
		a.Translator.T("dashboard.points"), reward.Points,
		a.Translator.T("dashboard.streak"), reward.StreakCount)
	return nil
}

func runStats(ctx context.Context, a *app.App, _ []string) error {
	stats, err := a.Wellness.Stats(ctx)
	if err != nil {
		return err
	}
	for _, day := range stats.History7d {
		label := wellness.LevelLabel(day.Mood)
		if label == "" {
			label = "-"
		}
		fmt.Printf("%s %-3s %s\n", day.Day, strings.Repeat("#", day.Mood), label)
	}
	fmt.Printf("%s: %d  %s: %d\n", a.Translator.T("dashboard.points"), stats.Points, a.Translator.T("dashboard.streak"), stats.StreakCount)
	return nil
}

func runForum(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("forum")
	category := fs.String("category", forum.AllCategories, "one of: "+strings.Join(forum.Categories, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Forum.Load(ctx); err != nil {
		fmt.Printf("Failed to load posts: %v (showing saved posts)\n", err)
	}
	fmt.Println(a.Translator.T("forum.title"))
	now := time.Now()
	for _, item := range a.Forum.Posts(*category) {
		state := ""
		if item.Status != pending.Confirmed {
			state = fmt.Sprintf(" [%s %s]", item.Status, item.PendingID)
		}
		fmt.Printf("%s  %s%s\n", item.ID, item.Title, state)
		fmt.Printf("    %s | %s | %s | %d likes | %d replies\n",
			item.Author.Display(), item.Category, forum.TimeAgo(item.CreatedAt, now), len(item.Likes), len(item.Replies))
		fmt.Printf("    %s\n", item.Content)
		if len(item.Tags) > 0 {
			fmt.Printf("    #%s\n", strings.Join(item.Tags, " #"))
		}
		for _, reply := range item.Replies {
			fmt.Printf("      > %s: %s\n", reply.Author.Display(), reply.Text)
		}
	}
	return nil
}

func runPost(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("post")
	draft := forum.Draft{}
	fs.StringVar(&draft.Title, "title", "", "post title")
	fs.StringVar(&draft.Content, "content", "", "post body")
	fs.StringVar(&draft.Category, "category", forum.DefaultCategory, "post category")
	fs.BoolVar(&draft.Anonymous, "anonymous", true, "hide your name")
	fs.StringVar(&draft.Tags, "tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := a.Forum.Create(ctx, draft, a.Session.User()); err != nil {
		return err
	}
	fmt.Println("Post shared")
	return nil
}

func runLike(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: like <post-id>")
	}
	return a.Forum.Like(ctx, args[0])
}

func runReply(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: reply <post-id> <text>")
	}
	return a.Forum.Reply(ctx, args[0], strings.Join(args[1:], " "))
}

func runDeletePost(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: delete-post <post-id>")
	}
	if readLine("Are you sure you want to delete this post? [y/N] ") != "y" {
		return nil
	}
	return a.Forum.Delete(ctx, args[0])
}

func runVouchers(ctx context.Context, a *app.App, _ []string) error {
	vouchers, err := a.Wellness.Vouchers(ctx)
	if err != nil {
		return err
	}
	for _, v := range vouchers {
		fmt.Printf("%s  %s (%d points) stock %d\n    %s\n", v.ID, v.Title, v.PointsCost, v.Stock, v.Description)
	}
	return nil
}

func runRedeem(ctx context.Context, a *app.App, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: redeem <voucher-id>")
	}
	message, err := a.Wellness.Redeem(ctx, args[0])
	fmt.Println(message)
	return err
}

func runAdmin(ctx context.Context, a *app.App, _ []string) error {
	report := a.AdminReport(ctx)
	if _, failed := report.Errors[admin.PartOverview]; !failed {
		o := report.Overview
		fmt.Printf("users %d  students %d  counsellors %d  admins %d  upcoming appointments %d\n",
			o.TotalUsers, o.Students, o.Counsellors, o.Admins, o.UpcomingAppointments)
	}
	for _, week := range report.Trends {
		fmt.Printf("%-7s happy %3d  neutral %3d  sad %3d\n", week.Label, week.Happy, week.Neutral, week.Sad)
	}
	for _, campus := range report.Campuses {
		fmt.Printf("%-20s %d counsellors\n", campus.Campus, campus.Counsellors)
	}
	for part, err := range report.Errors {
		fmt.Printf("%s unavailable: %v\n", part, err)
	}
	return nil
}

func runBreathe(ctx context.Context, a *app.App, args []string) error {
	fs := newFlags("breathe")
	cycles := fs.Int("cycles", 3, "cycles to guide")
	if err := fs.Parse(args); err != nil {
		return err
	}

	states := make(chan breathing.State, 8)
	guide := a.Breathing(func(s breathing.State) {
		select {
		case states <- s:
		default:
		}
	})
	defer guide.Close()

	guide.Start()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-states:
			if s.Phase == breathing.Idle {
				continue
			}
			if s.Cycles >= *cycles {
				fmt.Printf("%s: %d\n", a.Translator.T("breathing.cycles"), s.Cycles)
				return nil
			}
			fmt.Println(a.Translator.T("breathing." + string(s.Phase)))
		}
	}
}

func runRelax(_ context.Context, a *app.App, args []string) error {
	fs := newFlags("relax")
	kind := fs.String("type", relaxation.All, "one of: "+strings.Join(relaxation.TrackTypes, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() > 0 {
		track, ok := relaxation.FindTrack(fs.Arg(0))
		if !ok {
			return fmt.Errorf("no session %q", fs.Arg(0))
		}
		if a.Player.Toggle(track.ID) == track.ID {
			fmt.Printf("Now playing: %s\n%s\n", track.Title, track.URL)
		}
		return nil
	}

	fmt.Println(a.Translator.T("relaxation.title"))
	for _, track := range relaxation.Tracks(*kind) {
		by := ""
		if track.Instructor != "" {
			by = " by " + track.Instructor
		}
		fmt.Printf("%s  %s (%s, %s)%s\n    %s\n", track.ID, track.Title, track.Type, track.Duration, by, track.Description)
	}
	return nil
}

func runResources(_ context.Context, a *app.App, args []string) error {
	fs := newFlags("resources")
	category := fs.String("category", relaxation.All, "one of: "+strings.Join(relaxation.ResourceCategories, ", "))
	kind := fs.String("type", relaxation.All, "one of: "+strings.Join(relaxation.ResourceTypes, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println(a.Translator.T("resources.title"))
	for _, resource := range relaxation.Resources(*category, *kind) {
		fmt.Printf("%s  %s [%s, %s, %s]\n    %s\n    %s\n",
			resource.ID, resource.Title, resource.Type, resource.Category, resource.Language, resource.Description, resource.URL)
	}
	return nil
}

func printBoard(a *app.App, game *memorygame.Game) {
	state := game.State()
	for i, card := range state.Cards {
		face := "❓"
		if card.Visible() {
			face = card.Value
		}
		fmt.Printf("%2d:%s ", card.ID, face)
		if (i+1)%4 == 0 {
			fmt.Println()
		}
	}
	fmt.Printf("%s: %d\n", a.Translator.T("game.moves"), state.Moves)
}

// flipPair turns up two cards as one turn. Nothing is flipped unless both
// cards can be.
func flipPair(game *memorygame.Game, first, second int) bool {
	if first == second || !game.CanFlip(first) || !game.CanFlip(second) {
		return false
	}
	return game.Flip(first) && game.Flip(second)
}

func runGame(ctx context.Context, a *app.App, _ []string) error {
	game := a.MemoryGame()
	fmt.Println(a.Translator.T("game.title"))
	fmt.Println(`Flip two cards with "a b", "reset" for a new deck, "quit" to stop.`)
	printBoard(a, game)

	scanner := bufio.NewScanner(os.Stdin)
	for !game.Solved() {
		fmt.Print("> ")
		if !scanner.Scan() || ctx.Err() != nil {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 1 && fields[0] == "quit":
			return nil
		case len(fields) == 1 && fields[0] == "reset":
			game.Reset()
		case len(fields) == 2:
			first, errA := strconv.Atoi(fields[0])
			second, errB := strconv.Atoi(fields[1])
			if errA != nil || errB != nil || !flipPair(game, first, second) {
				fmt.Println("cannot flip those cards")
			}
			if len(game.State().Selected) == 2 {
				printBoard(a, game)
				time.Sleep(memorygame.MismatchDelay)
			}
		default:
			fmt.Println(`enter two card numbers, "reset" or "quit"`)
			continue
		}
		printBoard(a, game)
	}
	fmt.Println(a.Translator.T("game.solved"))
	return nil
}
