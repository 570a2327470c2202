package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sajumatch/internal/compat"
	"sajumatch/internal/config"
	"sajumatch/internal/room"
	"sajumatch/internal/types"
)

var (
	roomPerson  string
	roomName    string
	roomTier    string
	roomMinTier string
	roomRef     string
	roomMember  string
)

// roomCmd groups room subcommands
var roomCmd = &cobra.Command{
	Use:   "room",
	Short: "Create and inspect rooms of participants",
}

var roomCreateCmd = &cobra.Command{
	Use:   "create [room-name]",
	Short: "Create a room with yourself as the first participant",
	Long: `Example:
  sajumatch room create "study group" --person INTJ:1995-01-01:12 --name Ada`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoomCreate,
}

var roomJoinCmd = &cobra.Command{
	Use:   "join [room-id]",
	Short: "Join an existing room",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoomJoin,
}

var roomShowCmd = &cobra.Command{
	Use:   "show [room-id]",
	Short: "Show a room and its participants",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoomShow,
}

var roomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rooms",
	RunE:  runRoomList,
}

var roomGraphCmd = &cobra.Command{
	Use:   "graph [room-id]",
	Short: "Score every pair of participants",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoomGraph,
}

var roomWatchCmd = &cobra.Command{
	Use:   "watch [room-id]",
	Short: "Print relations again whenever someone joins (file backend)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoomWatch,
}

var roomRelationsCmd = &cobra.Command{
	Use:   "relations [room-id]",
	Short: "Rank participants against one reference participant",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoomRelations,
}

func init() {
	roomCreateCmd.Flags().StringVar(&roomPerson, "person", "", "You as TYPE:YYYY-MM-DD[:HOUR] (required)")
	roomCreateCmd.Flags().StringVar(&roomName, "name", "", "Your display name")
	roomCreateCmd.MarkFlagRequired("person")

	roomJoinCmd.Flags().StringVar(&roomPerson, "person", "", "You as TYPE:YYYY-MM-DD[:HOUR] (required)")
	roomJoinCmd.Flags().StringVar(&roomName, "name", "", "Your display name")
	roomJoinCmd.MarkFlagRequired("person")

	roomGraphCmd.Flags().StringVar(&roomTier, "tier", "", "Only show edges in this tier")
	roomGraphCmd.Flags().StringVar(&roomMinTier, "min-tier", "", "Only show edges in this tier or better")
	roomGraphCmd.Flags().StringVar(&roomMember, "participant", "", "Only show edges of this participant ID")
	roomRelationsCmd.Flags().StringVar(&roomRef, "ref", "", "Reference participant ID (default: creator)")
	roomWatchCmd.Flags().StringVar(&roomRef, "ref", "", "Reference participant ID (default: creator)")

	roomCmd.AddCommand(roomCreateCmd)
	roomCmd.AddCommand(roomJoinCmd)
	roomCmd.AddCommand(roomShowCmd)
	roomCmd.AddCommand(roomListCmd)
	roomCmd.AddCommand(roomGraphCmd)
	roomCmd.AddCommand(roomRelationsCmd)
	roomCmd.AddCommand(roomWatchCmd)
}

// openService opens the configured store. The returned func releases it.
func openService() (*room.Service, func(), error) {
	store, err := room.Open(cfg.Rooms)
	if err != nil {
		return nil, nil, err
	}
	if p, ok := store.(interface{ Path() string }); ok {
		logger.Debug("room store opened", zap.String("backend", cfg.Rooms.Backend), zap.String("path", p.Path()))
	}
	release := func() {
		if c, ok := store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("closing room store", zap.Error(err))
			}
		}
	}
	return room.NewService(store, cfg.Rooms.MaxParticipants), release, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runRoomCreate(cmd *cobra.Command, args []string) error {
	p, err := parsePerson(roomPerson, roomName)
	if err != nil {
		return err
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	svc, release, err := openService()
	if err != nil {
		return err
	}
	defer release()

	r, err := svc.Create(commandContext(cmd), name, p)
	if err != nil {
		return err
	}
	logger.Info("room created", zap.String("room", r.ID))

	if cfg.Output.IsJSON() {
		return writeJSON(r)
	}
	fmt.Printf("Created room %s\n", r.ID)
	fmt.Printf("  your participant id: %s\n", r.Participants[0].ID)
	return nil
}

func runRoomJoin(cmd *cobra.Command, args []string) error {
	p, err := parsePerson(roomPerson, roomName)
	if err != nil {
		return err
	}

	svc, release, err := openService()
	if err != nil {
		return err
	}
	defer release()

	joined, r, err := svc.Join(commandContext(cmd), args[0], p)
	if err != nil {
		return err
	}
	logger.Info("joined room", zap.String("room", r.ID), zap.String("participant", joined.ID))

	if cfg.Output.IsJSON() {
		return writeJSON(joined)
	}
	fmt.Printf("Joined room %s as %s (%d participants)\n", r.ID, joined.ID, len(r.Participants))
	return nil
}

func runRoomShow(cmd *cobra.Command, args []string) error {
	svc, release, err := openService()
	if err != nil {
		return err
	}
	defer release()

	r, err := svc.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	if cfg.Output.IsJSON() {
		return writeJSON(r)
	}

	printRoomHeader(r)
	for _, p := range r.Participants {
		marker := " "
		if p.Creator {
			marker = "*"
		}
		fp, err := p.FourPillars()
		key := "?"
		if err == nil {
			key = fp.Key()
		}
		fmt.Printf(" %s %-20s %s  %s  %s\n", marker, p.DisplayName(), p.TypeCode, key, styled(mutedStyle, p.ID))
	}
	return nil
}

func runRoomList(cmd *cobra.Command, args []string) error {
	svc, release, err := openService()
	if err != nil {
		return err
	}
	defer release()

	rooms, err := svc.List(commandContext(cmd))
	if err != nil {
		return err
	}
	if cfg.Output.IsJSON() {
		if rooms == nil {
			rooms = []types.Room{}
		}
		return writeJSON(rooms)
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms.")
		return nil
	}
	for _, r := range rooms {
		fmt.Printf("%s  %-30s %d participants\n", r.ID, r.Name, len(r.Participants))
	}
	return nil
}

func runRoomGraph(cmd *cobra.Command, args []string) error {
	var filter, minTier compat.Tier
	if roomTier != "" {
		t, err := compat.ParseTier(roomTier)
		if err != nil {
			return err
		}
		filter = t
	}
	if roomMinTier != "" {
		t, err := compat.ParseTier(roomMinTier)
		if err != nil {
			return fmt.Errorf("--min-tier: %w", err)
		}
		minTier = t
	}

	svc, release, err := openService()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.GetGraphTimeout())
	defer cancel()

	r, err := svc.Get(ctx, args[0])
	if err != nil {
		return err
	}
	g, err := room.BuildGraph(ctx, r, cfg.Graph.Workers)
	if err != nil {
		return err
	}
	if filter.Valid() {
		g.Edges = g.Filter(filter)
	}
	if minTier.Valid() {
		g.Edges = g.AtLeast(minTier)
	}

	if roomMember != "" {
		member, ok := g.Node(roomMember)
		if !ok {
			return fmt.Errorf("participant %q in room %s: %w", roomMember, r.ID, room.ErrNotFound)
		}
		g.Edges = g.EdgesOf(member.ID)
		if cfg.Output.IsJSON() {
			return writeJSON(g)
		}
		printRoomHeader(r)
		fmt.Printf("  from %s\n", styled(headerStyle, member.DisplayName()))
		for _, e := range g.Edges {
			other, _ := g.Node(e.Other(member.ID))
			fmt.Printf("  %-20s %3d  %s\n", other.DisplayName(), e.Result.CombinedScore, tierBadge(e.Result.Tier))
		}
		return nil
	}

	if cfg.Output.IsJSON() {
		return writeJSON(g)
	}

	printRoomHeader(r)
	for _, e := range g.Edges {
		a, _ := g.Node(e.From)
		b, _ := g.Node(e.To)
		fmt.Printf("  %-20s %-20s %3d  %s\n", a.DisplayName(), b.DisplayName(), e.Result.CombinedScore, tierBadge(e.Result.Tier))
	}
	return nil
}

func runRoomRelations(cmd *cobra.Command, args []string) error {
	svc, release, err := openService()
	if err != nil {
		return err
	}
	defer release()

	r, err := svc.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	ref, rels, err := room.Relations(r, roomRef)
	if err != nil {
		return err
	}

	if cfg.Output.IsJSON() {
		return writeJSON(struct {
			Reference types.Person    `json:"reference"`
			Relations []room.Relation `json:"relations"`
		}{ref, rels})
	}

	printRelations(r, ref, rels)
	return nil
}

func runRoomWatch(cmd *cobra.Command, args []string) error {
	store, err := room.Open(cfg.Rooms)
	if err != nil {
		return err
	}
	fs, ok := store.(*room.FileStore)
	if !ok {
		if c, ok := store.(io.Closer); ok {
			c.Close()
		}
		return fmt.Errorf("room watch requires the %s backend", config.BackendFile)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = fs.Watch(ctx, args[0], func(r types.Room) {
		ref, rels, err := room.Relations(r, roomRef)
		if err != nil {
			logger.Warn("relations", zap.String("room", r.ID), zap.Error(err))
			return
		}
		if cfg.Output.IsJSON() {
			_ = writeJSON(rels)
			return
		}
		printRelations(r, ref, rels)
		fmt.Println()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printRelations(r types.Room, ref types.Person, rels []room.Relation) {
	printRoomHeader(r)
	fmt.Printf("  from %s\n", styled(headerStyle, ref.DisplayName()))
	for _, rel := range rels {
		fmt.Printf("  %-20s %3d  %s\n", rel.Person.DisplayName(), rel.Result.CombinedScore, tierBadge(rel.Result.Tier))
	}
}

func printRoomHeader(r types.Room) {
	title := r.Name
	if title == "" {
		title = r.ID
	}
	fmt.Printf("%s  %s\n", styled(headerStyle, title), styled(mutedStyle, fmt.Sprintf("%d participants", len(r.Participants))))
}
