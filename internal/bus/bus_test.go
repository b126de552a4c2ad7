package bus

import "testing"

func TestBus_PublishFansOutInOrder(t *testing.T) {
	b := New()

	var got []int
	b.Subscribe(TopicShelfChanged, func(Message) { got = append(got, 1) })
	b.Subscribe(TopicShelfChanged, func(Message) { got = append(got, 2) })
	b.Subscribe(TopicShelfChanged, func(Message) { got = append(got, 3) })

	b.Publish(Message{Topic: TopicShelfChanged, EntityID: 7})

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("handlers ran as %v, want [1 2 3]", got)
	}
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	b := New()

	var shelf, follow int
	b.Subscribe(TopicShelfChanged, func(Message) { shelf++ })
	b.Subscribe(TopicFollowChanged, func(Message) { follow++ })

	b.Publish(Message{Topic: TopicShelfChanged})
	b.Publish(Message{Topic: TopicShelfChanged})
	b.Publish(Message{Topic: TopicFollowChanged})

	if shelf != 2 {
		t.Fatalf("shelf handler ran %d times, want 2", shelf)
	}
	if follow != 1 {
		t.Fatalf("follow handler ran %d times, want 1", follow)
	}
}

func TestBus_PublishWithoutSubscribersIsSafe(t *testing.T) {
	var b Bus
	b.Publish(Message{Topic: TopicLoggedOut})
}

func TestBus_HandlerSeesMessage(t *testing.T) {
	b := New()

	var got Message
	b.Subscribe(TopicFollowChanged, func(msg Message) { got = msg })

	b.Publish(Message{Topic: TopicFollowChanged, EntityID: 42})

	if got.Topic != TopicFollowChanged || got.EntityID != 42 {
		t.Fatalf("handler received %+v, want follow.changed entity 42", got)
	}
}
